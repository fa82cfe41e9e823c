package client

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/devconnect/devconnect/internal/client/state"
)

// DefaultAlertTimeout is how long an alert stays up before the action
// layer removes it.
var DefaultAlertTimeout = 5 * time.Second

// Actions executes one API call per method and dispatches the outcome to
// the store. Methods never return the response body, the store is the only
// output channel.
type Actions struct {
	api          *API
	store        *state.Store
	alertTimeout time.Duration
}

func NewActions(api *API, store *state.Store) *Actions {
	return &Actions{
		api:          api,
		store:        store,
		alertTimeout: DefaultAlertTimeout,
	}
}

func (a *Actions) WithAlertTimeout(d time.Duration) *Actions {
	a.alertTimeout = d
	return a
}

// Store exposes the store driving this action layer
func (a *Actions) Store() *state.Store {
	return a.store
}

// SetAlert shows a notification and schedules its removal
func (a *Actions) SetAlert(msg string, alertType state.AlertType) uuid.UUID {
	id := uuid.New()
	a.store.Dispatch(state.AlertSet{Alert: state.Alert{
		ID:   id,
		Msg:  msg,
		Type: alertType,
	}})

	time.AfterFunc(a.alertTimeout, func() {
		a.store.Dispatch(state.AlertRemoved{ID: id})
	})

	return id
}

// serverErrors is the 400 wire shape, one entry per rejected field
type serverErrors struct {
	Errors []struct {
		Param string `json:"param"`
		Msg   string `json:"msg"`
	} `json:"errors"`
}

type serverMsg struct {
	Msg string `json:"msg"`
}

// alertServerErrors fans a validation failure out into one alert per entry
func (a *Actions) alertServerErrors(resp response) {
	var payload serverErrors
	if err := json.Unmarshal(resp.Body, &payload); err == nil && len(payload.Errors) > 0 {
		for _, entry := range payload.Errors {
			a.SetAlert(entry.Msg, state.AlertDanger)
		}
		return
	}

	var msg serverMsg
	if err := json.Unmarshal(resp.Body, &msg); err == nil && msg.Msg != "" {
		a.SetAlert(msg.Msg, state.AlertDanger)
	}
}

// requestError extracts a display error from a failed response
func requestError(resp response) state.RequestError {
	var msg serverMsg
	if err := json.Unmarshal(resp.Body, &msg); err == nil && msg.Msg != "" {
		return state.RequestError{Msg: msg.Msg, Status: resp.Status}
	}
	return state.RequestError{Msg: http.StatusText(resp.Status), Status: resp.Status}
}
