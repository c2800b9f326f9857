package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
)

const (
	transcriptionModel = "whisper-1"
	speechModel        = "tts-1"
	speechModelHD      = "tts-1-hd"
)

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads audio and returns the transcribed text.
func (c *Client) Transcribe(ctx context.Context, filename string, audio []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("openai: build upload: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("openai: build upload: %w", err)
	}
	if err := writer.WriteField("model", transcriptionModel); err != nil {
		return "", fmt.Errorf("openai: build upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("openai: build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	data, err := c.postRaw(req, "/audio/transcriptions")
	if err != nil {
		return "", err
	}

	var resp transcriptionResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("openai: decode transcription: %w", err)
	}
	return resp.Text, nil
}

type speechRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Voice string `json:"voice"`
}

// Synthesize renders text to speech and returns the audio bytes.
// hd selects the higher-quality model.
func (c *Client) Synthesize(ctx context.Context, input, voice string, hd bool) ([]byte, error) {
	model := speechModel
	if hd {
		model = speechModelHD
	}

	payload, err := json.Marshal(speechRequest{
		Model: model,
		Input: input,
		Voice: voice,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/speech", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.postRaw(req, "/audio/speech")
}
