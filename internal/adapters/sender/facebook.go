package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Facebook publishes to a page feed through the Graph API.
type Facebook struct {
	baseURL string
}

func NewFacebook() *Facebook {
	return &Facebook{
		baseURL: "https://graph.facebook.com/v17.0",
	}
}

type graphPostResponse struct {
	ID    string `json:"id"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (f *Facebook) PostText(ctx context.Context, message string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/feed", f.baseURL, viper.GetString("facebook.page_id"))

	form := url.Values{}
	form.Set("message", message)
	form.Set("access_token", viper.GetString("facebook.access_token"))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("error creating facebook request: %w", err)
	}
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	return f.execute(req)
}

func (f *Facebook) PostPhoto(ctx context.Context, message string, photo []byte) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/photos", f.baseURL, viper.GetString("facebook.page_id"))

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("source", "post.png")
	if err != nil {
		return "", fmt.Errorf("error building photo upload: %w", err)
	}
	if _, err := part.Write(photo); err != nil {
		return "", fmt.Errorf("error building photo upload: %w", err)
	}

	_ = writer.WriteField("message", message)
	_ = writer.WriteField("access_token", viper.GetString("facebook.access_token"))

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("error building photo upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", fmt.Errorf("error creating facebook request: %w", err)
	}
	req.Header.Add("Content-Type", writer.FormDataContentType())

	return f.execute(req)
}

func (f *Facebook) execute(req *http.Request) (string, error) {
	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error executing facebook request: %w", err)
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("error reading facebook response: %w", err)
	}

	var result graphPostResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("error unmarshalling facebook response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("facebook API error: %s", result.Error.Message)
	}

	log.Info().Str("postID", result.ID).Msg("facebook post created")

	return result.ID, nil
}
