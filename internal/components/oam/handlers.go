// Copyright 2025 EURECOM
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Contributors:
//   Giulio CAROTA
//   Thomas DU
//   Adlen KSENTINI

package oam

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

const subscriptionsPath = "/fapi-simulator/v1/subscriptions"

func (n *Notifier) HandleNewSubscription(w http.ResponseWriter, r *http.Request) {
	sub := Subscription{}
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := n.Subscribe(sub)
	switch {
	case errors.Is(err, ErrInvalidCallback), errors.Is(err, ErrUnknownErrorCode):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Location", subscriptionsPath+"/"+created.ID)
	writeJSON(w, http.StatusCreated, created)
}

func (n *Notifier) HandleListSubscriptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, n.Subscriptions())
}

func (n *Notifier) HandleGetSubscription(w http.ResponseWriter, r *http.Request) {
	sub, ok := n.Subscription(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "subscription not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (n *Notifier) HandleDeleteSubscription(w http.ResponseWriter, r *http.Request) {
	if !n.Unsubscribe(mux.Vars(r)["id"]) {
		http.Error(w, "subscription not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (n *Notifier) RegisterNorthboundAPIs(r *mux.Router) {
	r.HandleFunc(subscriptionsPath, n.HandleNewSubscription).Methods(http.MethodPost)
	r.HandleFunc(subscriptionsPath, n.HandleListSubscriptions).Methods(http.MethodGet)
	r.HandleFunc(subscriptionsPath+"/{id}", n.HandleGetSubscription).Methods(http.MethodGet)
	r.HandleFunc(subscriptionsPath+"/{id}", n.HandleDeleteSubscription).Methods(http.MethodDelete)
	n.logger.Info("subscriptions API has been registered", "path", subscriptionsPath)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "could not encode response", http.StatusInternalServerError)
	}
}
