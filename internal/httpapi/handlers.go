package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"channelhub/internal/config"
	"channelhub/pkg/types"
)

type handlers struct {
	svc Service
}

// decodeJSON enforces the content type and body limit. It writes the error
// response itself and reports false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		IncrementRejected("content_type")
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Oversized bodies also land here; report 400 without size details.
		IncrementRejected("invalid_json")
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// requestFieldNames maps request struct fields to the names clients send.
var requestFieldNames = map[string]string{
	"Kind":      "kind",
	"ID":        "content id",
	"ChannelID": "channel_id",
}

// validateBody runs the shared validator over a decoded body. On failure it
// writes a 400 naming the first offending field and reports false.
func validateBody(w http.ResponseWriter, v any) bool {
	err := config.Validator().Struct(v)
	if err == nil {
		return true
	}
	IncrementRejected("validation")
	msg := "invalid request body"
	var fes validator.ValidationErrors
	if errors.As(err, &fes) && len(fes) > 0 {
		fe := fes[0]
		name, ok := requestFieldNames[fe.StructField()]
		if !ok {
			name = fe.Field()
		}
		switch fe.Tag() {
		case "required", "notblank":
			msg = name + " is required"
		default:
			msg = name + " is invalid"
		}
	}
	writeJSONError(w, http.StatusBadRequest, msg)
	return false
}

// definitions godoc
// @Summary      List module definitions
// @Tags         definitions
// @Produce      json
// @Success      200  {object}  types.DefinitionsResponse
// @Router       /definitions [get]
func (h *handlers) definitions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.DefinitionsResponse{Definitions: h.svc.Definitions()})
}

// listInstances godoc
// @Summary      List module instances
// @Tags         instances
// @Produce      json
// @Success      200  {object}  types.InstancesResponse
// @Router       /instances [get]
func (h *handlers) listInstances(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.InstancesResponse{Instances: h.svc.ListInstances()})
}

// createInstance godoc
// @Summary      Create a module instance
// @Tags         instances
// @Accept       json
// @Produce      json
// @Param        request  body      types.CreateInstanceRequest  true  "Module kind"
// @Success      201      {object}  types.InstanceSummary
// @Failure      400      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Router       /instances [post]
func (h *handlers) createInstance(w http.ResponseWriter, r *http.Request) {
	var req types.CreateInstanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateBody(w, &req) {
		return
	}
	start := time.Now()
	sum, err := h.svc.CreateInstance(req.Kind, req.Name)
	if err != nil {
		writeServiceError(w, r, "create instance", start, err)
		return
	}
	logRequestEnd(r, "create instance", http.StatusCreated, start, nil)
	writeJSON(w, http.StatusCreated, sum)
}

// instanceDetail godoc
// @Summary      Describe an instance
// @Tags         instances
// @Produce      json
// @Param        id   path      string  true  "Instance id"
// @Success      200  {object}  types.InstanceDetail
// @Failure      404  {object}  types.ErrorResponse
// @Router       /instances/{id} [get]
func (h *handlers) instanceDetail(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.InstanceDetail(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, "instance detail", time.Now(), err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// removeInstance godoc
// @Summary      Tear down an instance
// @Description  Unregisters receivers then channels; subscribers of its channels are detached.
// @Tags         instances
// @Param        id   path  string  true  "Instance id"
// @Success      204
// @Failure      404  {object}  types.ErrorResponse
// @Router       /instances/{id} [delete]
func (h *handlers) removeInstance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if err := h.svc.RemoveInstance(chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, "remove instance", start, err)
		return
	}
	logRequestEnd(r, "remove instance", http.StatusNoContent, start, nil)
	w.WriteHeader(http.StatusNoContent)
}

// replaceContents godoc
// @Summary      Replace the contents of a channel
// @Tags         channels
// @Accept       json
// @Param        id         path  string                        true  "Publisher instance id"
// @Param        channelID  path  string                        true  "Channel id"
// @Param        request    body  types.ReplaceContentsRequest  true  "New contents"
// @Success      204
// @Failure      404  {object}  types.ErrorResponse
// @Router       /instances/{id}/channels/{channelID}/contents [put]
func (h *handlers) replaceContents(w http.ResponseWriter, r *http.Request) {
	var req types.ReplaceContentsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateBody(w, &req) {
		return
	}
	start := time.Now()
	if err := h.svc.ReplaceContents(chi.URLParam(r, "id"), chi.URLParam(r, "channelID"), req.Contents); err != nil {
		writeServiceError(w, r, "replace contents", start, err)
		return
	}
	logRequestEnd(r, "replace contents", http.StatusNoContent, start, nil)
	w.WriteHeader(http.StatusNoContent)
}

// publishContent godoc
// @Summary      Republish one content
// @Tags         channels
// @Accept       json
// @Param        id         path  string                true  "Publisher instance id"
// @Param        channelID  path  string                true  "Channel id"
// @Param        contentID  path  string                true  "Content id"
// @Param        request    body  types.ContentPayload  true  "New data"
// @Success      204
// @Failure      404  {object}  types.ErrorResponse
// @Router       /instances/{id}/channels/{channelID}/contents/{contentID} [put]
func (h *handlers) publishContent(w http.ResponseWriter, r *http.Request) {
	var p types.ContentPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	contentID := chi.URLParam(r, "contentID")
	if p.ID != "" && p.ID != contentID {
		IncrementRejected("validation")
		writeJSONError(w, http.StatusBadRequest, "payload id does not match path")
		return
	}
	start := time.Now()
	if err := h.svc.PublishContent(chi.URLParam(r, "id"), chi.URLParam(r, "channelID"), contentID, p); err != nil {
		writeServiceError(w, r, "publish content", start, err)
		return
	}
	logRequestEnd(r, "publish content", http.StatusNoContent, start, nil)
	w.WriteHeader(http.StatusNoContent)
}

// subscribe godoc
// @Summary      Subscribe a receiver to a channel
// @Tags         receivers
// @Accept       json
// @Param        id          path  string                  true  "Subscriber instance id"
// @Param        receiverID  path  string                  true  "Receiver id"
// @Param        request     body  types.SubscribeRequest  true  "Channel and selection"
// @Success      204
// @Failure      404  {object}  types.ErrorResponse
// @Router       /instances/{id}/receivers/{receiverID}/subscription [post]
func (h *handlers) subscribe(w http.ResponseWriter, r *http.Request) {
	var req types.SubscribeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateBody(w, &req) {
		return
	}
	start := time.Now()
	if err := h.svc.Subscribe(chi.URLParam(r, "id"), chi.URLParam(r, "receiverID"), req); err != nil {
		writeServiceError(w, r, "subscribe", start, err)
		return
	}
	logRequestEnd(r, "subscribe", http.StatusNoContent, start, nil)
	w.WriteHeader(http.StatusNoContent)
}

// unsubscribe godoc
// @Summary      Release a receiver's subscription
// @Tags         receivers
// @Param        id          path  string  true  "Subscriber instance id"
// @Param        receiverID  path  string  true  "Receiver id"
// @Success      204
// @Failure      404  {object}  types.ErrorResponse
// @Router       /instances/{id}/receivers/{receiverID}/subscription [delete]
func (h *handlers) unsubscribe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if err := h.svc.Unsubscribe(chi.URLParam(r, "id"), chi.URLParam(r, "receiverID")); err != nil {
		writeServiceError(w, r, "unsubscribe", start, err)
		return
	}
	logRequestEnd(r, "unsubscribe", http.StatusNoContent, start, nil)
	w.WriteHeader(http.StatusNoContent)
}

// receiverSnapshot godoc
// @Summary      Read what a receiver currently sees
// @Description  On a read failure the snapshot is still returned, with error set and a 4xx/5xx status.
// @Tags         receivers
// @Produce      json
// @Param        id          path      string  true  "Subscriber instance id"
// @Param        receiverID  path      string  true  "Receiver id"
// @Success      200         {object}  types.ReceiverSnapshot
// @Failure      404         {object}  types.ErrorResponse
// @Failure      422         {object}  types.ReceiverSnapshot
// @Router       /instances/{id}/receivers/{receiverID} [get]
func (h *handlers) receiverSnapshot(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	snap, err := h.svc.ReceiverSnapshot(chi.URLParam(r, "id"), chi.URLParam(r, "receiverID"))
	if err != nil {
		if snap.ReceiverID == "" {
			writeServiceError(w, r, "receiver snapshot", start, err)
			return
		}
		status := statusFor(err)
		logRequestEnd(r, "receiver snapshot", status, start, err)
		writeJSON(w, status, snap)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
