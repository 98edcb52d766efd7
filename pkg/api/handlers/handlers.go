package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/mccartn3y/tetris-cli/pkg/log"
	"github.com/mccartn3y/tetris-cli/pkg/repositories"
)

func HandleListTurnRecords(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := uuid.Parse(r.PathValue("sessionID"))
		if err != nil {
			http.Error(w, "Invalid session ID", http.StatusBadRequest)
			return
		}

		records, err := repository.LoadTurnRecords(r.Context(), sessionID)
		if err != nil {
			log.Error("failed to load turn records: %v", err)
			http.Error(w, "Failed to load turn records", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			log.Error("failed to encode turn records: %v", err)
			http.Error(w, "Failed to encode turn records", http.StatusInternalServerError)
			return
		}
	}
}

func HandleGetTurnRecord(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		turnID, err := uuid.Parse(r.PathValue("turnID"))
		if err != nil {
			http.Error(w, "Invalid turn ID", http.StatusBadRequest)
			return
		}

		record, err := repository.LoadTurnRecord(r.Context(), turnID)
		if err != nil {
			if repositories.IsNotFound(err) {
				http.Error(w, "Turn not found", http.StatusNotFound)
				return
			}
			log.Error("failed to load turn record: %v", err)
			http.Error(w, "Failed to load turn record", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(record); err != nil {
			log.Error("failed to encode turn record: %v", err)
			http.Error(w, "Failed to encode turn record", http.StatusInternalServerError)
			return
		}
	}
}
