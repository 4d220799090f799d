package controllers

import (
	"net/http"

	"github.com/orderhub/orderhub-backend/api/responses"
	"github.com/orderhub/orderhub-backend/api/validators"
	whatsappsvc "github.com/orderhub/orderhub-backend/internal/whatsapp"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
	"github.com/orderhub/orderhub-backend/pkg/logger"
)

type whatsappCredentialsRequest struct {
	BaseURL    string `json:"base_url,omitempty"`
	InstanceID string `json:"instance_id,omitempty"`
	Token      string `json:"token,omitempty"`
}

type whatsappMessageRequest struct {
	Number      string                      `json:"number" validate:"required"`
	Text        string                      `json:"text,omitempty"`
	MediaURL    string                      `json:"media_url,omitempty"`
	MediaType   string                      `json:"media_type,omitempty"`
	FileName    string                      `json:"file_name,omitempty"`
	Caption     string                      `json:"caption,omitempty"`
	Credentials *whatsappCredentialsRequest `json:"credentials,omitempty"`
}

type whatsappBatchRequest struct {
	Async    bool                     `json:"async,omitempty"`
	Messages []whatsappMessageRequest `json:"messages" validate:"required,min=1,dive"`
}

// WhatsAppBatch sends a batch of messages, synchronously by default or
// through the background queue when async is set.
func WhatsAppBatch(svc whatsappsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "whatsapp service unavailable"))
			return
		}

		var payload whatsappBatchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		messages := make([]whatsappsvc.Message, 0, len(payload.Messages))
		for _, m := range payload.Messages {
			msg := whatsappsvc.Message{
				Number:    m.Number,
				Text:      m.Text,
				MediaURL:  m.MediaURL,
				MediaType: m.MediaType,
				FileName:  m.FileName,
				Caption:   m.Caption,
			}
			if m.Credentials != nil {
				msg.Credentials = &whatsappsvc.Credentials{
					BaseURL:    m.Credentials.BaseURL,
					InstanceID: m.Credentials.InstanceID,
					Token:      m.Credentials.Token,
				}
			}
			messages = append(messages, msg)
		}

		if payload.Async {
			if err := svc.EnqueueBatch(r.Context(), messages); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]any{
				"status":   "enqueued",
				"messages": len(messages),
			})
			return
		}

		if err := svc.SendBatch(r.Context(), messages); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"status":   "sent",
			"messages": len(messages),
		})
	}
}
