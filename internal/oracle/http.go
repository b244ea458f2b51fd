package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rocketscienceinc/inversi/internal/entity"
)

var ErrUnexpectedStatus = errors.New("unexpected oracle response status")

const maxAnswerBytes = 64 << 10

type httpRequest struct {
	Prompt     string        `json:"prompt"`
	Board      string        `json:"board"`
	LegalMoves string        `json:"legal_moves"`
	Counts     entity.Counts `json:"counts"`
	Player     string        `json:"player"`
}

type httpAnswer struct {
	Move string `json:"move"`
}

// HTTPOracle posts the position as JSON and expects either {"move": "..."} or
// a plain-text body back.
type HTTPOracle struct {
	url    string
	client *http.Client
}

// NewHTTPOracle - the timeout bounds the whole exchange; zero means no limit.
func NewHTTPOracle(url string, timeout time.Duration) *HTTPOracle {
	return &HTTPOracle{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (that *HTTPOracle) Decide(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(httpRequest{
		Prompt:     Prompt(req),
		Board:      req.BoardText,
		LegalMoves: req.LegalMovesText,
		Counts:     req.Counts,
		Player:     req.Player.String(),
	})
	if err != nil {
		return "", fmt.Errorf("could not marshal oracle request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, that.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build oracle request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := that.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call oracle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxAnswerBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read oracle response: %w", err)
	}

	return extractAnswer(raw)
}

func extractAnswer(raw []byte) (string, error) {
	var answer httpAnswer
	if err := json.Unmarshal(raw, &answer); err == nil && answer.Move != "" {
		return strings.TrimSpace(answer.Move), nil
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", ErrEmptyAnswer
	}

	return text, nil
}
