package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Aehsan4004/hashmap/storage/chaining"
)

// Keys and values are decoded untyped so that a number or object in the
// "key" field is reported as a bad request rather than a decode failure.
type KeyPost struct {
	Key interface{} `json:"key"`
}

type InsertPost struct {
	Key   interface{} `json:"key"`
	Value interface{} `json:"value"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	msg, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(msg)
}

func decodeBody(r *http.Request, v interface{}) error {
	b, err := io.ReadAll(r.Body)
	defer r.Body.Close()
	if err != nil {
		return errors.Wrap(err, "read body")
	}

	return errors.Wrap(json.Unmarshal(b, v), "decode body")
}

// decodeKey reads a {"key": ...} body. On failure the response has already
// been written.
func decodeKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	requestData := KeyPost{}
	if err := decodeBody(r, &requestData); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}

	key, err := chaining.KeyFromValue(requestData.Key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}

	return key, true
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"status": "this method is not allowed",
	})
}

func (s *Server) InsertHandler(w http.ResponseWriter, r *http.Request) {
	requestData := InsertPost{}
	if err := decodeBody(r, &requestData); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key, err := chaining.KeyFromValue(requestData.Key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	value, ok := requestData.Value.(string)
	if !ok {
		http.Error(w, "value must be a string", http.StatusBadRequest)
		return
	}

	log.Infof("Server processing insert request for key=%s", key)
	s.store.Insert(key, value)

	writeJSON(w, http.StatusCreated, map[string]string{
		key: value,
	})
}

func (s *Server) RetrieveHandler(w http.ResponseWriter, r *http.Request) {
	key, ok := decodeKey(w, r)
	if !ok {
		return
	}

	log.Infof("Server processing retrieve request for key=%s", key)
	value, ok := s.store.Retrieve(key)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			key: "no value found",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		key: value,
	})
}

func (s *Server) HasHandler(w http.ResponseWriter, r *http.Request) {
	key, ok := decodeKey(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"key":     key,
		"present": s.store.Has(key),
	})
}

func (s *Server) RemoveHandler(w http.ResponseWriter, r *http.Request) {
	key, ok := decodeKey(w, r)
	if !ok {
		return
	}

	log.Infof("Server processing remove request for key=%s", key)
	value, ok := s.store.Remove(key)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			key: "no value found",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		key: value,
	})
}

func (s *Server) KeysHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Keys())
}

func (s *Server) ValuesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Values())
}

func (s *Server) EntriesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Entries())
}

func (s *Server) ClearHandler(w http.ResponseWriter, r *http.Request) {
	log.Info("Server processing clear request")
	s.store.Clear()

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "cleared",
	})
}

func (s *Server) StatsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]chaining.Stats{
		"entries": s.store.Stats(),
		"members": s.store.MemberStats(),
	})
}

func (s *Server) AddMemberHandler(w http.ResponseWriter, r *http.Request) {
	key, ok := decodeKey(w, r)
	if !ok {
		return
	}

	log.Infof("Server processing add member request for key=%s", key)
	s.store.AddMember(key)

	writeJSON(w, http.StatusCreated, map[string]string{
		"key": key,
	})
}

func (s *Server) HasMemberHandler(w http.ResponseWriter, r *http.Request) {
	key, ok := decodeKey(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"key":     key,
		"present": s.store.HasMember(key),
	})
}

func (s *Server) RemoveMemberHandler(w http.ResponseWriter, r *http.Request) {
	key, ok := decodeKey(w, r)
	if !ok {
		return
	}

	log.Infof("Server processing remove member request for key=%s", key)
	if !s.store.RemoveMember(key) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			key: "no member found",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"key": key,
	})
}

func (s *Server) MembersHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Members())
}

func (s *Server) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := s.sink.DisplayMetrics(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "pong",
	})
}
