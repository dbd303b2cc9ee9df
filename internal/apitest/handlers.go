package apitest

import (
	"fmt"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
)

func (s *Storefront) list(coll string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		c := s.coll(coll)
		out := make([]map[string]any, 0, len(c.ids))
		for _, id := range c.ids {
			out = append(out, c.records[id])
		}
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Storefront) get(coll string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := s.Record(coll, chi.URLParam(r, "id"))
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func (s *Storefront) insert(coll string, rec map[string]any) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := fmt.Sprintf("%s-%d", path.Base(coll), s.seq)
	rec["id"] = id
	c := s.coll(coll)
	c.ids = append(c.ids, id)
	c.records[id] = rec
	return rec
}

func (s *Storefront) create(coll string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := decode(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusCreated, s.insert(coll, rec))
	}
}

func (s *Storefront) update(coll string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		patch, err := decode(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		s.mu.Lock()
		rec, ok := s.coll(coll).records[id]
		if ok {
			for k, v := range patch {
				rec[k] = v
			}
			rec["id"] = id
		}
		s.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func (s *Storefront) remove(coll string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		s.mu.Lock()
		c := s.coll(coll)
		_, ok := c.records[id]
		if ok {
			delete(c.records, id)
			for i, v := range c.ids {
				if v == id {
					c.ids = append(c.ids[:i], c.ids[i+1:]...)
					break
				}
			}
		}
		s.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// toggle flips isActive; the status follows it.
func (s *Storefront) toggle(coll string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		s.mu.Lock()
		rec, ok := s.coll(coll).records[id]
		if ok {
			active, _ := rec["isActive"].(bool)
			rec["isActive"] = !active
			if !active {
				rec["status"] = "active"
			} else {
				rec["status"] = "paused"
			}
		}
		s.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func (s *Storefront) listBlocks(w http.ResponseWriter, r *http.Request) {
	pageId := chi.URLParam(r, "id")
	s.mu.Lock()
	c := s.coll("constructor/blocks")
	out := []map[string]any{}
	for _, id := range c.ids {
		if c.records[id]["pageId"] == pageId {
			out = append(out, c.records[id])
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Storefront) createBlock(w http.ResponseWriter, r *http.Request) {
	rec, err := decode(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	rec["pageId"] = chi.URLParam(r, "id")
	writeJSON(w, http.StatusCreated, s.insert("constructor/blocks", rec))
}

func (s *Storefront) putUpload(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"url": "/objects/local-upload/" + chi.URLParam(r, "fileId"),
	})
}

func (s *Storefront) postUpload(w http.ResponseWriter, r *http.Request) {
	_, fh, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
		return
	}
	s.mu.Lock()
	s.seq++
	n := s.seq
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{
		"url": fmt.Sprintf("/objects/local-upload/upload-%d%s", n, path.Ext(fh.Filename)),
	})
}

func (s *Storefront) createAR(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if r.MultipartForm.File["photo"] == nil || r.MultipartForm.File["video"] == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "photo and video are required"})
		return
	}
	rec := s.insert("ar", map[string]any{
		"status":      "pending",
		"projectName": r.FormValue("projectName"),
	})
	writeJSON(w, http.StatusCreated, map[string]any{
		"arProject": rec,
		"compile":   map[string]any{"queued": true},
	})
}
