package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"murmur/core"
	"murmur/service"
	"murmur/storage"
)

// updateMessageRequest carries the replacement text for PATCH
type updateMessageRequest struct {
	MessageText string `json:"message_text"`
}

// createMessage handles POST /messages
func (a *API) createMessage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var message core.Message
	if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := a.messageService.Create(r.Context(), &message)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			http.Error(w, "Message rejected", http.StatusBadRequest)
			return
		}
		a.logger.Errorw("Failed to create message",
			"posted_by", message.PostedBy,
			"error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	a.respondJSON(w, created, http.StatusOK)
}

// getAllMessages handles GET /messages
func (a *API) getAllMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := a.messageService.GetAll(r.Context())
	if err != nil {
		a.logger.Errorw("Failed to list messages", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	a.respondJSON(w, messages, http.StatusOK)
}

// getMessageByID handles GET /messages/{message_id}
func (a *API) getMessageByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "message_id")
	if err != nil {
		http.Error(w, "Invalid message ID", http.StatusBadRequest)
		return
	}

	message, err := a.messageService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrMessageNotFound) {
			a.respondEmpty(w)
			return
		}
		a.logger.Errorw("Failed to get message", "message_id", id, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	a.respondJSON(w, message, http.StatusOK)
}

// updateMessage handles PATCH /messages/{message_id}
func (a *API) updateMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "message_id")
	if err != nil {
		http.Error(w, "Invalid message ID", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req updateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := a.messageService.UpdateText(r.Context(), id, req.MessageText)
	if err != nil {
		// Updating a nonexistent message is a client error, unlike
		// lookups and deletes which return an empty 200
		if errors.Is(err, service.ErrValidation) || errors.Is(err, storage.ErrMessageNotFound) {
			http.Error(w, "Update rejected", http.StatusBadRequest)
			return
		}
		a.logger.Errorw("Failed to update message", "message_id", id, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	a.respondJSON(w, updated, http.StatusOK)
}

// deleteMessage handles DELETE /messages/{message_id}
func (a *API) deleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "message_id")
	if err != nil {
		http.Error(w, "Invalid message ID", http.StatusBadRequest)
		return
	}

	deleted, err := a.messageService.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrMessageNotFound) {
			a.respondEmpty(w)
			return
		}
		a.logger.Errorw("Failed to delete message", "message_id", id, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	a.respondJSON(w, deleted, http.StatusOK)
}

// getMessagesByAccount handles GET /accounts/{account_id}/messages
func (a *API) getMessagesByAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "account_id")
	if err != nil {
		http.Error(w, "Invalid account ID", http.StatusBadRequest)
		return
	}

	messages, err := a.messageService.GetAllByAuthor(r.Context(), accountID)
	if err != nil {
		a.logger.Errorw("Failed to list account messages",
			"account_id", accountID,
			"error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	a.respondJSON(w, messages, http.StatusOK)
}
