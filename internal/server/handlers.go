package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/tagcloud/tagcloud/pkg/buildinfo"
	"github.com/tagcloud/tagcloud/pkg/errors"
	"github.com/tagcloud/tagcloud/pkg/fonts"
	"github.com/tagcloud/tagcloud/pkg/output"
	"github.com/tagcloud/tagcloud/pkg/pipeline"
	"github.com/tagcloud/tagcloud/pkg/wordfreq"
)

// runRequest is the body of POST /render and POST /words.
type runRequest struct {
	Text    string           `json:"text"`
	Options pipeline.Options `json:"options"`
}

// WordsResponse is the body returned by POST /words.
type WordsResponse struct {
	Words  []wordfreq.WordCount `json:"words"`
	Unique int                  `json:"unique"`
	Cached bool                 `json:"cached"`
}

// decodeRun reads a run request. Options absent from the body keep the
// server defaults.
func (s *Server) decodeRun(r *http.Request) (runRequest, error) {
	req := runRequest{Options: s.cfg.Defaults}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return req, err
		}
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	if req.Text == "" {
		return req, errors.New(errors.ErrCodeInvalidInput, "text is required")
	}
	req.Options.Logger = s.logger.With("id", RequestID(r.Context()))
	return req, nil
}

func (s *Server) runContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.cfg.RunTimeout)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRun(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := s.runContext(r)
	defer cancel()

	res, err := s.cfg.Runner.Execute(ctx, []byte(req.Text), req.Options)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if res.Cancelled {
		writeCancelled(w, r)
		return
	}

	h := w.Header()
	h.Set("Content-Type", output.ContentType(res.Format))
	h.Set("Content-Length", strconv.Itoa(len(res.Artifact)))
	h.Set("X-Cache", cacheHeader(res.CacheInfo.ArtifactHit))
	h.Set("X-Tagcloud-Words", strconv.Itoa(res.Stats.DrawnWords))
	h.Set("X-Tagcloud-Size", fmt.Sprintf("%dx%d", res.Stats.Width, res.Stats.Height))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifact)
}

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRun(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := s.runContext(r)
	defer cancel()

	words, unique, hit, err := s.cfg.Runner.CountWithCacheInfo(ctx, []byte(req.Text), req.Options)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if ctx.Err() != nil {
		writeCancelled(w, r)
		return
	}
	if words == nil {
		words = []wordfreq.WordCount{}
	}
	w.Header().Set("X-Cache", cacheHeader(hit))
	writeJSON(w, http.StatusOK, WordsResponse{Words: words, Unique: unique, Cached: hit})
}

func (s *Server) handleFonts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"fonts":   fonts.Names(),
		"default": fonts.DefaultFamily,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
