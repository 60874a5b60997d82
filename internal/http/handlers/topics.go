package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/albertshemyakin2009-sys/noolix/internal/data/repos/runs"
	types "github.com/albertshemyakin2009-sys/noolix/internal/domain"
	"github.com/albertshemyakin2009-sys/noolix/internal/http/response"
	"github.com/albertshemyakin2009-sys/noolix/internal/modules/repair"
	"github.com/albertshemyakin2009-sys/noolix/internal/modules/topics"
	"github.com/albertshemyakin2009-sys/noolix/internal/pkg/dbctx"
	"github.com/albertshemyakin2009-sys/noolix/internal/platform/ctxutil"
	"github.com/albertshemyakin2009-sys/noolix/internal/platform/logger"
)

const maxRunsLimit = 100

// Repairer runs a manual repair pass.
type Repairer interface {
	Repair(ctx context.Context) *repair.Report
}

type TopicHandler struct {
	log       *logger.Logger
	repairer  Repairer
	canon     *topics.Canonicalizer
	runs      runs.RepairRunRepo
	namespace string
}

func NewTopicHandler(log *logger.Logger, repairer Repairer, canon *topics.Canonicalizer, runRepo runs.RepairRunRepo, namespace string) *TopicHandler {
	if canon == nil {
		canon = topics.Default()
	}
	return &TopicHandler{
		log:       log.With("handler", "TopicHandler"),
		repairer:  repairer,
		canon:     canon,
		runs:      runRepo,
		namespace: namespace,
	}
}

type repairResponse struct {
	Changed bool           `json:"changed"`
	Report  *repair.Report `json:"report"`
}

// POST /api/topics/repair
func (h *TopicHandler) Repair(c *gin.Context) {
	if h.repairer == nil {
		response.RespondError(c, http.StatusServiceUnavailable, response.CodeUnavailable, errors.New("repair service not configured"))
		return
	}
	report := h.repairer.Repair(c.Request.Context())
	h.log.Info("manual topic repair",
		"run_id", report.RunID.String(),
		"request_id", ctxutil.RequestID(c.Request.Context()),
		"changed", report.Changed,
		"failed", report.Failed(),
	)
	response.RespondOK(c, repairResponse{Changed: report.Changed, Report: report})
}

type canonicalResponse struct {
	Raw       string `json:"raw"`
	Canonical string `json:"canonical"`
	Sanitized string `json:"sanitized"`
	Bad       bool   `json:"bad"`
}

// GET /api/topics/canonical?raw=
func (h *TopicHandler) Canonical(c *gin.Context) {
	raw, ok := c.GetQuery("raw")
	if !ok {
		response.RespondError(c, http.StatusBadRequest, response.CodeBadRequest, errors.New("missing raw query parameter"))
		return
	}
	response.RespondOK(c, canonicalResponse{
		Raw:       raw,
		Canonical: h.canon.CanonicalTopicKey(raw),
		Sanitized: h.canon.SanitizeTopicTitle(raw),
		Bad:       h.canon.IsBadTopicTitle(raw),
	})
}

// GET /api/topics/repair/runs?limit=
func (h *TopicHandler) ListRuns(c *gin.Context) {
	if h.runs == nil {
		response.RespondError(c, http.StatusServiceUnavailable, response.CodeUnavailable, errors.New("run history not configured"))
		return
	}
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.RespondError(c, http.StatusBadRequest, response.CodeBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = min(n, maxRunsLimit)
	}
	list, err := h.runs.ListRecent(dbctx.Context{Ctx: c.Request.Context()}, h.namespace, limit)
	if err != nil {
		h.log.Error("list repair runs failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, response.CodeInternal, errors.New("failed to list repair runs"))
		return
	}
	if list == nil {
		list = []*types.RepairRun{}
	}
	response.RespondOK(c, gin.H{"runs": list})
}
