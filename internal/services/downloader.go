package services

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DownloaderService resolves resume URLs to local files. Provider-specific
// sharing links (Google Drive, Dropbox, OneDrive) are rewritten to
// direct-content URLs before downloading.
type DownloaderService interface {
	// Fetch downloads the resume behind the URL into the temp dir and
	// returns the local path. ok is false on any failure; failures never
	// escape this boundary.
	Fetch(url string) (path string, ok bool)
	EnsureTempDir() error
}

type downloaderService struct {
	tempDir string
	http    *http.Client
}

func NewDownloaderService(tempDir string) DownloaderService {
	return &downloaderService{
		tempDir: tempDir,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (d *downloaderService) EnsureTempDir() error {
	if err := os.MkdirAll(d.tempDir, 0755); err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	return nil
}

var gdriveIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`id=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`),
}

func (d *downloaderService) Fetch(url string) (string, bool) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", false
	}

	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, "drive.google.com") || strings.Contains(lower, "docs.google.com"):
		return d.fetchGoogleDrive(url)
	case strings.Contains(lower, "dropbox.com"):
		return d.fetchDirect(dropboxDirectURL(url))
	case strings.Contains(lower, "onedrive.live.com") || strings.Contains(lower, "1drv.ms") || strings.Contains(lower, "sharepoint.com"):
		return d.fetchDirect(onedriveDirectURL(url))
	default:
		return d.fetchDirect(url)
	}
}

func (d *downloaderService) fetchGoogleDrive(url string) (string, bool) {
	var fileID string
	for _, pattern := range gdriveIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			fileID = m[1]
			break
		}
	}
	if fileID == "" {
		return "", false
	}

	directURL := "https://drive.google.com/uc?export=download&id=" + fileID
	return d.fetchDirect(directURL)
}

func dropboxDirectURL(url string) string {
	direct := strings.Replace(url, "www.dropbox.com", "dl.dropboxusercontent.com", 1)
	direct = regexp.MustCompile(`[?&]dl=[01]`).ReplaceAllString(direct, "")
	if strings.Contains(direct, "?") {
		return direct + "&dl=1"
	}
	return direct + "?dl=1"
}

func onedriveDirectURL(url string) string {
	direct := strings.Replace(url, "redir?", "download?", 1)
	return strings.Replace(direct, "embed?", "download?", 1)
}

func (d *downloaderService) fetchDirect(url string) (string, bool) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")

	resp, err := d.http.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", false
	}

	savePath := d.savePath(detectExtension(resp, url))
	dst, err := os.Create(savePath)
	if err != nil {
		return "", false
	}

	written, err := io.Copy(dst, resp.Body)
	dst.Close()
	if err != nil || written == 0 {
		os.Remove(savePath)
		return "", false
	}

	return savePath, true
}

func (d *downloaderService) savePath(extension string) string {
	filename := fmt.Sprintf("resume_%s.%s", uuid.New().String(), extension)
	return filepath.Join(d.tempDir, filename)
}

func detectExtension(resp *http.Response, url string) string {
	contentType := resp.Header.Get("Content-Type")
	lowerURL := strings.ToLower(url)
	switch {
	case strings.Contains(contentType, "pdf"):
		return "pdf"
	case strings.Contains(contentType, "word") || strings.Contains(contentType, "docx"):
		return "docx"
	case strings.HasSuffix(lowerURL, ".docx"):
		return "docx"
	case strings.HasSuffix(lowerURL, ".doc"):
		return "doc"
	default:
		return "pdf"
	}
}
