package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/apierror"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/config"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/dto"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/repository"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	BcryptCost      = 10
	minContrasena   = 6
	msgCredenciales = "Credenciales incorrectas"
	msgDuplicado    = "El nombre de usuario ya está registrado"
)

type AuthService interface {
	Verificar(ctx context.Context, nombre string) (*dto.VerificarResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Registrar(ctx context.Context, req dto.RegistroUsuarioRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error)
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
	now  func() time.Time
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg, now: time.Now}
}

// RolPara returns admin when nombre is on the allow-list, ignoring case and
// surrounding blanks.
func RolPara(nombre string, admins []string) string {
	n := strings.TrimSpace(nombre)
	for _, a := range admins {
		if strings.EqualFold(n, a) {
			return model.RolAdmin
		}
	}
	return model.RolCajero
}

func (s *authService) buscar(ctx context.Context, nombre string) (*model.Usuario, error) {
	u, err := s.repo.FindByNombre(ctx, nombre)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apierror.Remoto("No se pudo consultar el usuario", err)
	}
	return u, nil
}

func (s *authService) Verificar(ctx context.Context, nombre string) (*dto.VerificarResponse, error) {
	if strings.TrimSpace(nombre) == "" {
		return nil, apierror.Validacion("El nombre de usuario es requerido")
	}
	u, err := s.buscar(ctx, nombre)
	if err != nil {
		return nil, err
	}
	return &dto.VerificarResponse{Existe: u != nil, Siguiente: session.TrasVerificar(u != nil)}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(req.Nombre) == "" || req.Contrasena == "" {
		return nil, apierror.Validacion("Nombre de usuario y contraseña son requeridos")
	}
	u, err := s.buscar(ctx, req.Nombre)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apierror.Credenciales(msgCredenciales)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.ContrasenaHash), []byte(req.Contrasena)); err != nil {
		return nil, apierror.Credenciales(msgCredenciales)
	}

	at := s.now()
	if err := s.repo.TouchUltimoAcceso(ctx, u.ID, at); err != nil {
		log.Warn().Err(err).Str("usuario", u.Nombre).Msg("auth: no se pudo registrar ultimo acceso")
	} else {
		u.UltimoAcceso = &at
	}
	return s.respuesta(u)
}

func (s *authService) Registrar(ctx context.Context, req dto.RegistroUsuarioRequest) (*dto.LoginResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	switch {
	case nombre == "":
		return nil, apierror.Validacion("El nombre de usuario es requerido")
	case len([]rune(req.Contrasena)) < minContrasena:
		return nil, apierror.Validacion("La contraseña debe tener al menos 6 caracteres")
	case req.Contrasena != req.Confirmacion:
		return nil, apierror.Validacion("Las contraseñas no coinciden.")
	}

	existe, err := s.buscar(ctx, nombre)
	if err != nil {
		return nil, err
	}
	if existe != nil {
		return nil, apierror.Duplicado(msgDuplicado)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Contrasena), BcryptCost)
	if err != nil {
		return nil, err
	}
	now := s.now()
	u := &model.Usuario{
		Nombre:         nombre,
		ContrasenaHash: string(hash),
		Rol:            RolPara(nombre, s.cfg.Admins()),
		UltimoAcceso:   &now,
	}
	// the unique index on LOWER(nombre) catches a concurrent registration
	if err := s.repo.Create(ctx, u); errors.Is(err, repository.ErrDuplicado) {
		return nil, apierror.Duplicado(msgDuplicado)
	} else if err != nil {
		return nil, apierror.Remoto("No se pudo registrar el usuario", err)
	}
	log.Info().Str("usuario", u.Nombre).Str("rol", u.Rol).Msg("auth: usuario registrado")
	return s.respuesta(u)
}

func (s *authService) Me(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierror.NoEncontrado("Usuario no encontrado")
	}
	if err != nil {
		return nil, apierror.Remoto("No se pudo consultar el usuario", err)
	}
	r := usuarioResponse(u)
	return &r, nil
}

func usuarioResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{ID: u.ID.String(), Nombre: u.Nombre, Rol: u.Rol, UltimoAcceso: u.UltimoAcceso}
}

func (s *authService) respuesta(u *model.Usuario) (*dto.LoginResponse, error) {
	token, err := s.generateToken(u)
	if err != nil {
		return nil, err
	}
	id := &session.Identidad{ID: u.ID.String(), Nombre: u.Nombre, Rol: u.Rol}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		Usuario:     usuarioResponse(u),
		Inicio:      session.Inicio(id),
	}, nil
}

// Tokens carry no exp claim when JWT_EXPIRATION_HOURS is 0.
func (s *authService) generateToken(u *model.Usuario) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"nombre":  u.Nombre,
		"rol":     u.Rol,
		"iat":     now.Unix(),
	}
	if d := s.cfg.JWTExpiration(); d > 0 {
		claims["exp"] = now.Add(d).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
