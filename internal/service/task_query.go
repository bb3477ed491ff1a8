package service

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/pagination"
	"github.com/phrazzld/tasks-api/internal/store"
)

// List query parameter names.
const (
	ParamStatus  = "status"
	ParamSearch  = "search"
	ParamSortBy  = "sort_by"
	ParamSortDir = "sort_dir"
	ParamPerPage = "per_page"
	ParamPage    = pagination.PageParam
)

// Violation messages for list parameters.
const (
	MsgSortByInvalid  = "The selected sort by is invalid."
	MsgSortDirInvalid = "The selected sort dir is invalid."
)

// Defaults applied when the corresponding parameter is absent.
const (
	DefaultSortBy  = store.SortByCreatedAt
	DefaultSortDir = store.SortDesc
)

// ListParams holds the raw, unvalidated list parameters of a request.
type ListParams struct {
	Status  string
	Search  string
	SortBy  string
	SortDir string
	PerPage string
	Page    string
}

// ListParamsFromQuery extracts the list parameters from a URL query.
func ListParamsFromQuery(q url.Values) ListParams {
	return ListParams{
		Status:  q.Get(ParamStatus),
		Search:  q.Get(ParamSearch),
		SortBy:  q.Get(ParamSortBy),
		SortDir: q.Get(ParamSortDir),
		PerPage: q.Get(ParamPerPage),
		Page:    q.Get(ParamPage),
	}
}

// QueryBuilder turns list parameters into a bounded store.TaskQuery.
type QueryBuilder struct {
	cfg pagination.Config
}

// NewQueryBuilder creates a QueryBuilder bounded by cfg.
func NewQueryBuilder(cfg pagination.Config) *QueryBuilder {
	return &QueryBuilder{cfg: cfg}
}

// Build validates p and returns the store query it describes.
//
// Unknown sort fields or directions and unnormalizable statuses are
// reported together as *domain.ValidationErrors. Paging values never fail:
// per_page falls back to the default and is clamped to [1, max], page
// falls back to 1.
func (b *QueryBuilder) Build(p ListParams) (store.TaskQuery, error) {
	q := store.TaskQuery{
		Search:  strings.TrimSpace(p.Search),
		SortBy:  DefaultSortBy,
		SortDir: DefaultSortDir,
		PerPage: b.perPage(p.PerPage),
		Page:    page(p.Page),
	}

	verr := domain.NewValidationErrors()

	if raw := strings.TrimSpace(p.Status); raw != "" {
		status, err := domain.NormalizeStatus(raw)
		if err != nil {
			verr.Add(ParamStatus, domain.MsgStatusInvalid)
		} else {
			q.Status = &status
		}
	}

	if raw := strings.TrimSpace(p.SortBy); raw != "" {
		field := store.SortField(raw)
		if !field.IsValid() {
			verr.Add(ParamSortBy, MsgSortByInvalid)
		} else {
			q.SortBy = field
		}
	}

	if raw := strings.TrimSpace(p.SortDir); raw != "" {
		dir := store.SortDirection(strings.ToLower(raw))
		if !dir.IsValid() {
			verr.Add(ParamSortDir, MsgSortDirInvalid)
		} else {
			q.SortDir = dir
		}
	}

	if err := verr.Err(); err != nil {
		return store.TaskQuery{}, err
	}
	return q, nil
}

func (b *QueryBuilder) perPage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		n = b.cfg.DefaultPerPage
	}
	return b.cfg.ClampPerPage(n)
}

func page(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
