package services

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/Okita-Damian/video-streaming-App/domain"
)

// relayChunkSize caps a single negotiated window at 1 MiB.
const relayChunkSize = 1 << 20

// StreamServiceImpl implements domain.StreamService: it resolves the
// video's delivery URL, negotiates a byte window with the origin and
// relays the response body without buffering it.
type StreamServiceImpl struct {
	videoRepo  domain.VideoRepository
	storageSvc domain.StorageService
	client     *http.Client
	slots      chan struct{}
}

// NewStreamService creates a new stream service. timeout bounds the wait
// for upstream response headers, not the body transfer; maxConcurrent
// bounds in-flight relays.
func NewStreamService(videoRepo domain.VideoRepository, storageSvc domain.StorageService, timeout time.Duration, maxConcurrent int) domain.StreamService {
	if maxConcurrent <= 0 {
		maxConcurrent = 32
	}
	return &StreamServiceImpl{
		videoRepo:  videoRepo,
		storageSvc: storageSvc,
		client: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				ResponseHeaderTimeout: timeout,
				MaxIdleConnsPerHost:   maxConcurrent,
			},
		},
		slots: make(chan struct{}, maxConcurrent),
	}
}

// Stream implements domain.StreamService. The returned Body holds a
// relay slot until closed.
func (s *StreamServiceImpl) Stream(ctx context.Context, videoID uint, rangeHeader, viewer string) (*domain.StreamResult, error) {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	// Counted once per viewer for the video's lifetime; a failed relay
	// after this point still counts, matching a player that started.
	if _, err := s.videoRepo.RecordView(ctx, videoID, viewer); err != nil {
		return nil, fmt.Errorf("failed to record view: %w", err)
	}

	select {
	case s.slots <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	result, err := s.relay(ctx, s.storageSvc.DeliveryURL(video.URL), rangeHeader)
	if err != nil {
		<-s.slots
		return nil, err
	}
	result.Body = &slotReleaser{ReadCloser: result.Body, slots: s.slots}
	return result, nil
}

func (s *StreamServiceImpl) relay(ctx context.Context, url, rangeHeader string) (*domain.StreamResult, error) {
	total, err := s.probeSize(ctx, url)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.ErrUpstreamUnavailable
	}

	if rangeHeader == "" {
		// No window requested: relay the whole object as a plain 200.
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, domain.ErrUpstreamUnavailable
		}
		if resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, domain.ErrUpstreamUnavailable
		}
		return &domain.StreamResult{
			Status:        http.StatusOK,
			ContentLength: total,
			Body:          resp.Body,
		}, nil
	}

	// An offset at or past the object end gets the same lenience as a
	// digit-less header and restarts from zero.
	start := parseRangeStart(rangeHeader)
	if start >= total {
		start = 0
	}
	end := start + relayChunkSize
	if end > total-1 {
		end = total - 1
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", start, end))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, domain.ErrUpstreamUnavailable
	}
	if resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, domain.ErrUpstreamUnavailable
	}

	return &domain.StreamResult{
		Status:        http.StatusPartialContent,
		ContentRange:  fmt.Sprintf("bytes %d-%d/%d", start, end, total),
		ContentLength: end - start + 1,
		Body:          resp.Body,
	}, nil
}

// probeSize asks the origin for the object's total size via HEAD.
func (s *StreamServiceImpl) probeSize(ctx context.Context, url string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, domain.ErrUpstreamUnavailable
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, domain.ErrUpstreamUnavailable
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 || resp.ContentLength <= 0 {
		return 0, domain.ErrUpstreamUnavailable
	}
	return resp.ContentLength, nil
}

// parseRangeStart extracts the first run of digits from a Range header,
// e.g. "bytes=1000-" yields 1000. A missing or malformed header means
// start from the beginning.
func parseRangeStart(header string) int64 {
	i := 0
	for i < len(header) && (header[i] < '0' || header[i] > '9') {
		i++
	}
	j := i
	for j < len(header) && header[j] >= '0' && header[j] <= '9' {
		j++
	}
	if i == j {
		return 0
	}
	start, err := strconv.ParseInt(header[i:j], 10, 64)
	if err != nil {
		return 0
	}
	return start
}

// slotReleaser gives the relay slot back exactly once, when the handler
// finishes copying the body.
type slotReleaser struct {
	io.ReadCloser
	slots    chan struct{}
	released bool
}

func (r *slotReleaser) Close() error {
	if !r.released {
		r.released = true
		<-r.slots
	}
	return r.ReadCloser.Close()
}
