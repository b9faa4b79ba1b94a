package search

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-accounts/internal/application"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// NewClient creates an Elasticsearch client with optional basic auth.
func NewClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

// UserIndex stores user projections as documents keyed by user id.
type UserIndex struct {
	es     *elasticsearch.Client
	index  string
	logger *logrus.Logger
}

// NewUserIndex uses logger to report skipped search hits; nil uses the
// standard logger.
func NewUserIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *UserIndex {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &UserIndex{es: es, index: index, logger: logger}
}

type document struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toDocument(u application.UserOutput) document {
	return document{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Telephone: u.Telephone,
		Status:    u.Status,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (d document) output() (application.UserOutput, error) {
	created, err := time.Parse(time.RFC3339Nano, d.CreatedAt)
	if err != nil {
		return application.UserOutput{}, fmt.Errorf("created_at: %w", err)
	}
	updated, err := time.Parse(time.RFC3339Nano, d.UpdatedAt)
	if err != nil {
		return application.UserOutput{}, fmt.Errorf("updated_at: %w", err)
	}
	return application.UserOutput{
		ID:                d.ID,
		Name:              d.Name,
		Email:             d.Email,
		Telephone:         d.Telephone,
		Status:            d.Status,
		StatusDescription: describe(d.Status),
		CreatedAt:         created,
		UpdatedAt:         updated,
	}, nil
}

// Index writes u using UpdatedAt as an external version, so a projection
// older than the stored one is rejected with 409 and ignored.
func (i *UserIndex) Index(ctx context.Context, u application.UserOutput) error {
	b, err := json.Marshal(toDocument(u))
	if err != nil {
		return err
	}
	version := int(u.UpdatedAt.UnixNano())
	req := esapi.IndexRequest{
		Index:       i.index,
		DocumentID:  u.ID,
		Body:        bytes.NewReader(b),
		Refresh:     "false",
		Version:     &version,
		VersionType: "external_gte",
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.es)
	if err != nil {
		return fmt.Errorf("index user %s: %w", u.ID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode == http.StatusConflict {
		i.logger.WithField("user_id", u.ID).Debug("index holds a newer projection")
		return nil
	}
	if res.IsError() {
		return fmt.Errorf("index user %s: %s", u.ID, res.Status())
	}
	return nil
}

// Remove deletes the document; a missing document is not an error.
func (i *UserIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: i.index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.es)
	if err != nil {
		return fmt.Errorf("remove user %s: %w", id, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("remove user %s: %s", id, res.Status())
	}
	return nil
}

// Search runs a multi_match over email and name, email weighted double.
// Hits whose timestamps do not parse are logged and left out.
func (i *UserIndex) Search(ctx context.Context, q string, size int) ([]application.UserOutput, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := i.es.Search(
		i.es.Search.WithContext(c),
		i.es.Search.WithIndex(i.index),
		i.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search users: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string   `json:"_id"`
				Source document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]application.UserOutput, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		doc := h.Source
		if doc.ID == "" {
			doc.ID = h.ID
		}
		u, err := doc.output()
		if err != nil {
			i.logger.WithError(err).WithField("doc_id", h.ID).Warn("skipping malformed user document")
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func describe(status string) string {
	s, err := entity.ParseStatus(status)
	if err != nil {
		return ""
	}
	return s.Description()
}

var _ application.UserIndex = (*UserIndex)(nil)
