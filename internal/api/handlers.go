package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kingrea/patro/internal/bs"
	"github.com/kingrea/patro/internal/export"
	"github.com/kingrea/patro/internal/festival"
	"github.com/kingrea/patro/internal/grid"
)

// Handlers serves the read-only calendar API. It only touches the pure
// converter, the registry and the grid builder, so it is safe for
// concurrent requests.
type Handlers struct {
	registry     *festival.Registry
	builder      *grid.Builder
	clock        bs.Clock
	logger       *slog.Logger
	preferRemote bool
}

// HandlersOption customizes Handlers.
type HandlersOption func(*Handlers)

// WithClock overrides the clock behind /today.
func WithClock(clock bs.Clock) HandlersOption {
	return func(h *Handlers) {
		if clock != nil {
			h.clock = clock
		}
	}
}

// WithRemoteImages makes image lists and ICS attachments prefer imageUrl.
func WithRemoteImages(prefer bool) HandlersOption {
	return func(h *Handlers) {
		h.preferRemote = prefer
	}
}

// NewHandlers creates handlers backed by reg.
func NewHandlers(reg *festival.Registry, logger *slog.Logger, opts ...HandlersOption) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handlers{
		registry: reg,
		builder:  grid.NewBuilder(reg),
		clock:    time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// DayResponse describes one day on both calendars. Projected marks BS years
// whose month lengths are not yet published.
type DayResponse struct {
	AD        string            `json:"ad"`
	Weekday   string            `json:"weekday"`
	BS        string            `json:"bs"`
	BSText    string            `json:"bs_text"`
	BSLocal   string            `json:"bs_local"`
	Projected bool              `json:"projected,omitempty"`
	Festivals []FestivalPayload `json:"festivals"`
}

// FestivalPayload is a festival record plus the images a client should try
// in order.
type FestivalPayload struct {
	festival.Record
	Images []string `json:"images"`
}

// CellResponse is one grid square. Padding cells are null in the JSON array.
type CellResponse struct {
	AD        string            `json:"ad"`
	BS        string            `json:"bs,omitempty"`
	Festivals []FestivalPayload `json:"festivals,omitempty"`
}

// MonthResponse is the calendar endpoint payload.
type MonthResponse struct {
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	Label          string          `json:"label"`
	BSLabel        string          `json:"bs_label"`
	BSLocalLabel   string          `json:"bs_local_label"`
	BSSpan         string          `json:"bs_span"`
	MonthImage     string          `json:"month_image"`
	LeadingPadding int             `json:"leading_padding"`
	Cells          []*CellResponse `json:"cells"`
	FestivalDays   []DayResponse   `json:"festival_days"`
}

// HealthCheck reports liveness and the supported range.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	first, last := bs.Range()
	_ = WriteSuccess(w, map[string]any{
		"status":    "ok",
		"festivals": h.registry.Len(),
		"range": map[string]string{
			"from": first.String(),
			"to":   last.String(),
		},
	})
}

// GetToday returns the current day on both calendars.
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	now, err := bs.Today(h.clock)
	if err != nil {
		h.writeDateError(w, err)
		return
	}
	_ = WriteSuccess(w, h.day(now.AD, now.BS))
}

// ConvertAD converts /convert/ad/{date} to Bikram Sambat.
func (h *Handlers) ConvertAD(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "date")
	ad, err := bs.ParseAD(raw)
	if err != nil {
		_ = WriteBadRequest(w, fmt.Sprintf("Invalid AD date %q, use YYYY-MM-DD", raw))
		return
	}
	d, err := bs.ToBS(ad)
	if err != nil {
		h.writeDateError(w, err)
		return
	}
	_ = WriteSuccess(w, h.day(ad, d))
}

// ConvertBS converts /convert/bs/{date} to the Gregorian calendar.
func (h *Handlers) ConvertBS(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "date")
	d, err := bs.ParseBS(raw)
	if err != nil {
		h.writeDateError(w, err)
		return
	}
	ad, err := bs.ToAD(d)
	if err != nil {
		h.writeDateError(w, err)
		return
	}
	_ = WriteSuccess(w, h.day(ad, d))
}

// GetMonth returns the 42-cell grid for /calendar/{year}/{month}.
func (h *Handlers) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, errY := strconv.Atoi(chi.URLParam(r, "year"))
	month, errM := strconv.Atoi(chi.URLParam(r, "month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		_ = WriteBadRequest(w, "Calendar path must be /calendar/{year}/{month} with month 1-12")
		return
	}
	start := bs.NewAD(year, month, 1)
	g := h.builder.Build(start)
	summary := grid.Summarize(g)
	if summary.FirstBS == nil {
		first, last := bs.Range()
		_ = WriteOutOfRange(w, fmt.Sprintf("%s is outside the supported range %s to %s", start.Label(), first, last))
		return
	}

	resp := MonthResponse{
		Year:           year,
		Month:          month,
		Label:          summary.ADLabel,
		BSLabel:        summary.BSLabel,
		BSLocalLabel:   summary.BSLocalLabel,
		BSSpan:         summary.Span(),
		MonthImage:     summary.MonthImage,
		LeadingPadding: g.LeadingPadding(),
		Cells:          make([]*CellResponse, 0, grid.Size),
		FestivalDays:   []DayResponse{},
	}
	for _, cell := range g {
		if cell.IsPadding() {
			resp.Cells = append(resp.Cells, nil)
			continue
		}
		out := &CellResponse{AD: cell.AD.String(), Festivals: h.payloads(cell.Festivals)}
		if cell.BS != nil {
			out.BS = cell.BS.String()
		}
		resp.Cells = append(resp.Cells, out)
	}
	for _, cell := range grid.MonthFestivalDays(g) {
		resp.FestivalDays = append(resp.FestivalDays, h.day(*cell.AD, *cell.BS))
	}
	_ = WriteSuccess(w, resp)
}

// ListFestivals returns the whole registry in calendar order.
func (h *Handlers) ListFestivals(w http.ResponseWriter, r *http.Request) {
	_ = WriteSuccess(w, h.registry.Groups())
}

// GetFestival returns the records under /festivals/{key}. Any month
// spelling is accepted.
func (h *Handlers) GetFestival(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "key")
	key, err := festival.NormalizeKey(raw)
	if err != nil {
		_ = WriteBadRequest(w, err.Error())
		return
	}
	records := h.registry.Get(key)
	if len(records) == 0 {
		_ = WriteNotFound(w, fmt.Sprintf("No festivals on %s", key))
		return
	}
	_ = WriteSuccess(w, festival.Group{Key: key, Records: records})
}

// ExportICS streams /export/{year}.ics, the festival feed for a BS year.
// ?reminder=N adds an alarm N days ahead.
func (h *Handlers) ExportICS(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		_ = WriteBadRequest(w, "Export path must be /export/{bsYear}.ics")
		return
	}
	reminder := 0
	if raw := r.URL.Query().Get("reminder"); raw != "" {
		reminder, err = strconv.Atoi(raw)
		if err != nil || reminder < 0 || reminder > 30 {
			_ = WriteBadRequest(w, "reminder must be a number of days between 0 and 30")
			return
		}
	}
	events, err := export.FestivalEvents(h.registry, year)
	if err != nil {
		h.writeDateError(w, err)
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=patro_festivals_%d.ics", year))
	opts := export.Options{Stamp: h.clock(), ReminderDays: reminder, PreferRemoteImages: h.preferRemote}
	if err := export.WriteICS(w, year, events, opts); err != nil {
		h.logger.Warn("ics write failed", slog.Int("year", year), slog.Any("error", err))
	}
}

func (h *Handlers) day(ad bs.ADDate, d bs.BSDate) DayResponse {
	return DayResponse{
		AD:        ad.String(),
		Weekday:   ad.Weekday().String(),
		BS:        d.String(),
		BSText:    d.Format(),
		BSLocal:   d.FormatLocal(),
		Projected: bs.Projected(d.Year),
		Festivals: h.payloads(h.registry.Lookup(d)),
	}
}

func (h *Handlers) payloads(records []festival.Record) []FestivalPayload {
	out := make([]FestivalPayload, 0, len(records))
	for _, rec := range records {
		out = append(out, FestivalPayload{Record: rec, Images: rec.ImageSources(h.preferRemote)})
	}
	return out
}

// writeDateError maps converter errors onto the envelope: range misses are
// 422, everything else is a malformed request.
func (h *Handlers) writeDateError(w http.ResponseWriter, err error) {
	if bs.IsOutOfRange(err) {
		_ = WriteOutOfRange(w, err.Error())
		return
	}
	_ = WriteBadRequest(w, err.Error())
}
