package client

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

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/kuis-bot/internal/domain/entities"
)

const maxErrorBodyBytes = 512

// NetworkError reports a transport failure or a non-success response.
type NetworkError struct {
	Op         string // request description
	StatusCode int    // zero on transport failure
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ResponseFormatError reports a payload that does not have the expected shape.
type ResponseFormatError struct {
	Op  string
	Err error
}

func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *ResponseFormatError) Unwrap() error { return e.Err }

// Options configures a GeneratorClient.
type Options struct {
	BaseURL      string
	GeneratePath string
	FilesPath    string
	Timeout      time.Duration
}

// GeneratorClient talks to the remote question generator.
// Every call is a single attempt; retrying is up to the caller.
type GeneratorClient struct {
	baseURL      string
	generatePath string
	filesPath    string
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewGeneratorClient creates a client for the generator at opts.BaseURL.
func NewGeneratorClient(opts Options, logger *zap.Logger) *GeneratorClient {
	return &GeneratorClient{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		generatePath: opts.GeneratePath,
		filesPath:    opts.FilesPath,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		logger: logger,
	}
}

type generateRequest struct {
	Topic        string `json:"topic,omitempty"`
	UploadedFile string `json:"uploadedFile,omitempty"`
	Count        int    `json:"count"`
}

type generateResponse struct {
	Quiz *[]entities.QuizQuestion `json:"quiz"`
}

type filesResponse struct {
	Files *[]string `json:"files"`
	Count int       `json:"count"`
}

// FetchGeneratedQuestions requests count questions generated from either topic or uploadedFile.
func (c *GeneratorClient) FetchGeneratedQuestions(
	ctx context.Context, topic string, count int, uploadedFile string,
) ([]entities.QuizQuestion, error) {
	topic = strings.TrimSpace(topic)
	uploadedFile = strings.TrimSpace(uploadedFile)
	if topic == "" && uploadedFile == "" {
		return nil, entities.NewValidationError(entities.CodeMissingSource)
	}

	// A file reference takes over when both are set.
	payload := generateRequest{Count: count}
	if uploadedFile != "" {
		payload.UploadedFile = uploadedFile
	} else {
		payload.Topic = topic
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal generate request: %w", err)
	}

	const op = "generate questions"
	raw, err := c.do(ctx, op, http.MethodPost, c.generatePath, body)
	if err != nil {
		return nil, err
	}

	var resp generateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &ResponseFormatError{Op: op, Err: err}
	}
	if resp.Quiz == nil {
		return nil, &ResponseFormatError{Op: op, Err: errors.New("missing quiz field")}
	}

	questions := *resp.Quiz
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" || len(q.Options) == 0 {
			return nil, &ResponseFormatError{
				Op:  op,
				Err: fmt.Errorf("question %d has no text or options", i+1),
			}
		}
	}

	return questions, nil
}

// FetchUploadedFileNames lists documents available as question sources.
func (c *GeneratorClient) FetchUploadedFileNames(ctx context.Context) ([]string, error) {
	const op = "list uploaded files"
	raw, err := c.do(ctx, op, http.MethodGet, c.filesPath, nil)
	if err != nil {
		return nil, err
	}

	var resp filesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &ResponseFormatError{Op: op, Err: err}
	}
	if resp.Files == nil {
		if resp.Count == 0 {
			return []string{}, nil
		}
		return nil, &ResponseFormatError{Op: op, Err: errors.New("missing files field")}
	}

	return *resp.Files, nil
}

// do sends one request and returns the body of a 2xx response.
func (c *GeneratorClient) do(ctx context.Context, op, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("generator request failed",
			zap.String("op", op),
			zap.String("request_id", requestID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("generator responded",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		c.logger.Warn("generator returned error status",
			zap.String("op", op),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet),
		)
		return nil, &NetworkError{Op: op, StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}

	return raw, nil
}
