// Package download fetches the Formex editions of the Official Journal from
// the EU open-data portal: one ZIP per language and year, which itself
// contains one ZIP per journal issue.
package download

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultBaseURL is the Formex repository on the EU open-data portal.
const DefaultBaseURL = "http://data.europa.eu/euodp/repository/ec/publ/op-jo-formex/"

// ValidLanguages are the journal language editions available from the
// portal.
var ValidLanguages = map[string]bool{
	"BG": true, "CS": true, "DA": true, "DE": true, "EL": true, "EN": true,
	"ES": true, "ET": true, "FI": true, "FR": true, "GA": true, "HR": true,
	"HU": true, "IT": true, "LT": true, "LV": true, "MT": true, "NL": true,
	"PL": true, "PT": true, "RO": true, "SK": true, "SL": true, "SV": true,
}

// ValidateLanguage checks a language code against the available editions.
func ValidateLanguage(language string) error {
	if !ValidLanguages[strings.ToUpper(language)] {
		return fmt.Errorf("invalid language %q", language)
	}
	return nil
}

// Config holds configuration for the journal downloader.
type Config struct {
	// BaseURL is the Formex repository root.
	BaseURL string

	// DataRoot is the local directory receiving the archives.
	DataRoot string

	// RateLimit is the minimum interval between HTTP requests.
	RateLimit time.Duration

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// HTTPClient allows injection of a custom HTTP client (for testing).
	HTTPClient *http.Client

	// MaxRetries is the maximum number of attempts for transient errors.
	MaxRetries int

	// RetryBaseDelay is the initial delay between retries (doubles each
	// attempt).
	RetryBaseDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		DataRoot:       "data",
		RateLimit:      3 * time.Second,
		Timeout:        5 * time.Minute,
		UserAgent:      "formex-corpus/1.0",
		MaxRetries:     3,
		RetryBaseDelay: 5 * time.Second,
	}
}

// Result captures the outcome of downloading one language/year edition.
type Result struct {
	Language     string    `json:"language"`
	Year         int       `json:"year"`
	ArchivePath  string    `json:"archive_path"`
	ExtractedTo  string    `json:"extracted_to"`
	BytesWritten int64     `json:"bytes_written"`
	Skipped      bool      `json:"skipped"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// Downloader fetches and unpacks journal editions with rate limiting,
// retries, and resume support via a persistent manifest.
type Downloader struct {
	config       Config
	httpClient   *http.Client
	lastRequest  time.Time
	requestMu    sync.Mutex
	manifest     *Manifest
	manifestPath string
}

// NewDownloader creates a Downloader, initializing the data root and
// loading any existing manifest.
func NewDownloader(config Config) (*Downloader, error) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if err := os.MkdirAll(config.DataRoot, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data root: %w", err)
	}

	manifestPath := filepath.Join(config.DataRoot, "manifest.json")
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &Downloader{
		config:       config,
		httpClient:   httpClient,
		manifest:     manifest,
		manifestPath: manifestPath,
	}, nil
}

// Manifest returns the underlying download manifest.
func (downloader *Downloader) Manifest() *Manifest {
	return downloader.manifest
}

// SaveManifest persists the download manifest to disk.
func (downloader *Downloader) SaveManifest() error {
	return downloader.manifest.Save(downloader.manifestPath)
}

// editionStem returns the archive stem for a language and year, e.g.
// "JOx_FMX_EN_2014".
func editionStem(language string, year int) string {
	return fmt.Sprintf("JOx_FMX_%s_%d", strings.ToUpper(language), year)
}

var yearPattern = regexp.MustCompile(`JOx_FMX_[A-Z]{2}_(\d{4})\.ZIP`)

// ListAvailableYears fetches the repository index for a language and
// returns the years with a published edition, sorted ascending.
func (downloader *Downloader) ListAvailableYears(language string) ([]int, error) {
	if err := ValidateLanguage(language); err != nil {
		return nil, err
	}

	indexURL := downloader.config.BaseURL + "JOx_FMX_" + strings.ToUpper(language)
	body, err := downloader.fetch(indexURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list years: %w", err)
	}

	seen := make(map[int]bool)
	var years []int
	for _, match := range yearPattern.FindAllStringSubmatch(string(body), -1) {
		year, err := strconv.Atoi(match[1])
		if err != nil || seen[year] {
			continue
		}
		seen[year] = true
		years = append(years, year)
	}
	sort.Ints(years)
	return years, nil
}

// DownloadYear fetches one language/year edition: the parent ZIP is
// downloaded (or reused when already valid on disk), extracted into the
// year directory, and the nested per-issue ZIPs are unpacked and removed.
// The parent archive itself is kept for resumability.
func (downloader *Downloader) DownloadYear(language string, year int) (*Result, error) {
	if err := ValidateLanguage(language); err != nil {
		return nil, err
	}
	language = strings.ToUpper(language)

	stem := editionStem(language, year)
	languageDir := filepath.Join(downloader.config.DataRoot, language)
	yearDir := filepath.Join(languageDir, stem)
	if err := os.MkdirAll(yearDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create year directory: %w", err)
	}

	result := &Result{
		Language:     language,
		Year:         year,
		ArchivePath:  filepath.Join(languageDir, stem+".ZIP"),
		ExtractedTo:  yearDir,
		DownloadedAt: time.Now(),
	}

	if zipValid(result.ArchivePath) {
		result.Skipped = true
	} else {
		archiveURL := downloader.config.BaseURL + "JOx_FMX_" + language + "/" + stem + ".ZIP"
		bytesWritten, err := downloader.fetchToFile(archiveURL, result.ArchivePath)
		if err != nil {
			return nil, fmt.Errorf("failed to download %s: %w", archiveURL, err)
		}
		result.BytesWritten = bytesWritten

		downloader.manifest.Record(&Record{
			Language:     language,
			Year:         year,
			URL:          archiveURL,
			LocalPath:    result.ArchivePath,
			SizeBytes:    bytesWritten,
			DownloadedAt: result.DownloadedAt,
		})
		if err := downloader.SaveManifest(); err != nil {
			return nil, err
		}
	}

	// The parent archive contains one ZIP per journal issue.
	if _, err := ExtractZIP(result.ArchivePath, yearDir); err != nil {
		return nil, err
	}

	issueArchives, err := filepath.Glob(filepath.Join(yearDir, "*.zip"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob issue archives: %w", err)
	}
	for _, issueArchive := range issueArchives {
		if _, err := ExtractZIP(issueArchive, yearDir); err != nil {
			return nil, err
		}
		if err := os.Remove(issueArchive); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", issueArchive, err)
		}
	}

	return result, nil
}

// fetch GETs a URL and returns the body, with rate limiting and retries.
func (downloader *Downloader) fetch(fetchURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < downloader.retries(); attempt++ {
		downloader.backoff(attempt)

		response, err := downloader.get(fetchURL)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(response.Body)
		response.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return body, nil
	}
	return nil, lastErr
}

// fetchToFile streams a URL to a local file, writing to a temporary path
// first so interrupted downloads never leave a truncated archive behind.
func (downloader *Downloader) fetchToFile(fetchURL string, localPath string) (int64, error) {
	var lastErr error
	for attempt := 0; attempt < downloader.retries(); attempt++ {
		downloader.backoff(attempt)

		response, err := downloader.get(fetchURL)
		if err != nil {
			lastErr = err
			continue
		}

		temporaryPath := localPath + ".part"
		outputFile, err := os.Create(temporaryPath)
		if err != nil {
			response.Body.Close()
			return 0, fmt.Errorf("failed to create %s: %w", temporaryPath, err)
		}

		bytesWritten, err := io.Copy(outputFile, response.Body)
		response.Body.Close()
		outputFile.Close()
		if err != nil {
			os.Remove(temporaryPath)
			lastErr = fmt.Errorf("failed to stream %s: %w", fetchURL, err)
			continue
		}

		if err := os.Rename(temporaryPath, localPath); err != nil {
			os.Remove(temporaryPath)
			return 0, fmt.Errorf("failed to finalize %s: %w", localPath, err)
		}
		return bytesWritten, nil
	}
	return 0, lastErr
}

// get performs one rate-limited GET and checks the status code. 5xx
// responses are returned as errors so the retry loop picks them up.
func (downloader *Downloader) get(fetchURL string) (*http.Response, error) {
	downloader.waitRateLimit()

	request, err := http.NewRequest(http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("User-Agent", downloader.config.UserAgent)

	response, err := downloader.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", fetchURL, err)
	}
	if response.StatusCode != http.StatusOK {
		response.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", response.StatusCode, fetchURL)
	}
	return response, nil
}

func (downloader *Downloader) retries() int {
	if downloader.config.MaxRetries <= 0 {
		return 1
	}
	return downloader.config.MaxRetries
}

func (downloader *Downloader) backoff(attempt int) {
	if attempt == 0 {
		return
	}
	baseDelay := downloader.config.RetryBaseDelay
	if baseDelay <= 0 {
		baseDelay = 5 * time.Second
	}
	time.Sleep(baseDelay * time.Duration(1<<uint(attempt-1)))
}

// waitRateLimit enforces the minimum interval between requests.
func (downloader *Downloader) waitRateLimit() {
	downloader.requestMu.Lock()
	defer downloader.requestMu.Unlock()

	if !downloader.lastRequest.IsZero() {
		elapsed := time.Since(downloader.lastRequest)
		if elapsed < downloader.config.RateLimit {
			time.Sleep(downloader.config.RateLimit - elapsed)
		}
	}
	downloader.lastRequest = time.Now()
}
