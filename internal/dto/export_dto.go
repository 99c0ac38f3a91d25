package dto

type EnviarResumenRequest struct {
	Mes          string `json:"mes" validate:"required,datetime=2006-01"`
	Destinatario string `json:"destinatario" validate:"required,email"`
}

// Archivo is a rendered download.
type Archivo struct {
	Nombre      string
	ContentType string
	Datos       []byte
}
