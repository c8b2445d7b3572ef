package rest

import (
	"time"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

type entryResponse struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Tags      []string       `json:"tags"`
	Source    string         `json:"source"`
	CreatedAt time.Time      `json:"created_at"`
	Metadata  map[string]any `json:"metadata"`
}

func toEntryResponse(e *domain.Entry) entryResponse {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return entryResponse{
		ID:        e.ID.String(),
		Content:   e.Content,
		Tags:      tags,
		Source:    e.Source,
		CreatedAt: e.CreatedAt,
		Metadata:  e.Metadata,
	}
}

func toEntryList(list []domain.Entry) []entryResponse {
	out := make([]entryResponse, len(list))
	for i := range list {
		out[i] = toEntryResponse(&list[i])
	}
	return out
}

type metricsResponse struct {
	Date         string    `json:"date"`
	Steps        int       `json:"steps"`
	EntryCount   int       `json:"entry_count"`
	CurrentMusic string    `json:"current_music"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toMetricsResponse(m *domain.DailyMetrics) *metricsResponse {
	if m == nil {
		return nil
	}
	return &metricsResponse{
		Date:         m.Date.Format(time.DateOnly),
		Steps:        m.Steps,
		EntryCount:   m.EntryCount,
		CurrentMusic: m.CurrentMusic,
		UpdatedAt:    m.UpdatedAt,
	}
}
