package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/infra"
	"github.com/rs/zerolog/log"
)

// ResumenEmailPayload carries a rendered monthly summary to mail as an
// attachment. Contenido travels base64-encoded in the job JSON.
type ResumenEmailPayload struct {
	Para      []string `json:"para"`
	Mes       string   `json:"mes"`
	Asunto    string   `json:"asunto"`
	Cuerpo    string   `json:"cuerpo"`
	Archivo   string   `json:"archivo"`
	Contenido []byte   `json:"contenido"`
}

// Sender is satisfied by *infra.Mailer.
type Sender interface {
	Enviar(to []string, subject, body string, adjuntos ...infra.Adjunto) error
}

type EmailWorker struct {
	mailer Sender
}

func NewEmailWorker(mailer Sender) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

var ErrSinDestinatario = errors.New("email_worker: sin destinatario")

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var p ResumenEmailPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	if len(p.Para) == 0 {
		return ErrSinDestinatario
	}

	err := w.mailer.Enviar(p.Para, p.Asunto, p.Cuerpo, infra.Adjunto{
		Nombre:      p.Archivo,
		ContentType: "text/plain; charset=utf-8",
		Datos:       p.Contenido,
	})
	if err != nil {
		return err
	}
	log.Info().Strs("para", p.Para).Str("mes", p.Mes).Msg("email_worker: resumen enviado")
	return nil
}
