// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rafaelvolkmer/docsmith/internal/domain/model"
	"github.com/rafaelvolkmer/docsmith/internal/domain/ports"
	"go.uber.org/zap"
)

// eventBufferSize bounds the lifecycle event channel. Emission never blocks;
// a subscriber that falls this far behind loses events.
const eventBufferSize = 256

// FileProcessor reads a list of files under a bounded level of concurrency,
// with per-file validation, chunked reads, timeout, and linear-backoff retry.
//
// One instance owns one stats record and one event channel, both created at
// construction. The event channel is closed exactly once, when the input
// queue has fully drained or the consumer abandons iteration.
type FileProcessor struct {
	opts   model.ProcessingOptions
	clock  ports.Clock
	writer ports.OutputWriter
	logger *zap.Logger

	statsMu sync.Mutex
	stats   model.ProcessingStats

	eventMu      sync.Mutex
	events       chan model.Event
	eventsClosed bool

	// readFn performs one chunked read attempt; replaced in tests.
	readFn func(ctx context.Context, path string, size int64) ([]byte, error)
}

// NewFileProcessor builds a processor for one batch. Options are normalized
// once here; a nil logger is replaced with a no-op one.
func NewFileProcessor(opts model.ProcessingOptions, clock ports.Clock, writer ports.OutputWriter, logger *zap.Logger) *FileProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &FileProcessor{
		opts:   opts.Normalized(),
		clock:  clock,
		writer: writer,
		logger: logger,
		events: make(chan model.Event, eventBufferSize),
	}
	p.stats.StartTime = clock.Now()
	p.readFn = p.readFileChunked
	return p
}

// Events returns the lifecycle event channel. It is closed when processing
// finishes; subscribe before consuming ProcessFiles to observe everything.
func (p *FileProcessor) Events() <-chan model.Event {
	return p.events
}

// Stats returns a snapshot of the aggregate counters.
func (p *FileProcessor) Stats() model.ProcessingStats {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	return p.stats
}

// WriteOutputFile persists content to destPath, optionally creating the
// missing parent directories first.
func (p *FileProcessor) WriteOutputFile(ctx context.Context, content []byte, destPath string, createDirs bool) error {
	return p.writer.WriteFile(ctx, destPath, content, createDirs)
}

// ProcessFiles consumes paths and returns a lazily produced result stream.
//
// Results arrive in strict input order regardless of which reads finish
// first: the processor always awaits the oldest in-flight file, refilling
// the pool up to the concurrency cap as files complete. The channel is
// closed once the batch drains; cancelling ctx abandons the batch but still
// runs the stats-stamp and event-channel-close cleanup.
func (p *FileProcessor) ProcessFiles(ctx context.Context, paths []string) <-chan model.FileResult {
	out := make(chan model.FileResult)
	go p.run(ctx, paths, out)
	return out
}

type inflightFile struct {
	path string
	done chan model.FileResult
}

func (p *FileProcessor) run(ctx context.Context, paths []string, out chan<- model.FileResult) {
	defer close(out)
	defer p.finish()

	pending := paths
	var inflight []*inflightFile

	for len(pending) > 0 || len(inflight) > 0 {
		for len(pending) > 0 && len(inflight) < p.opts.Concurrency {
			f := &inflightFile{path: pending[0], done: make(chan model.FileResult, 1)}
			pending = pending[1:]
			inflight = append(inflight, f)

			go func(f *inflightFile) {
				f.done <- p.processFileWithRetry(ctx, f.path)
			}(f)
		}

		oldest := inflight[0]
		var res model.FileResult
		select {
		case res = <-oldest.done:
		case <-ctx.Done():
			return
		}
		inflight = inflight[1:]

		p.recordOutcome(res)

		select {
		case out <- res:
		case <-ctx.Done():
			return
		}
	}
}

// finish is the unconditional cleanup for every exit path of run.
func (p *FileProcessor) finish() {
	p.statsMu.Lock()
	p.stats.EndTime = p.clock.Now()
	p.statsMu.Unlock()

	p.eventMu.Lock()
	if !p.eventsClosed {
		p.eventsClosed = true
		close(p.events)
	}
	p.eventMu.Unlock()
}

func (p *FileProcessor) recordOutcome(res model.FileResult) {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()

	switch {
	case res.Err == nil:
		p.stats.Processed++
		p.stats.TotalSize += int64(len(res.Content))
	case res.Err.Kind == model.KindTooLarge:
		p.stats.Skipped++
	default:
		p.stats.Failed++
	}
}

// processFileWithRetry runs validate-and-read rounds until one succeeds or
// the retry budget is spent. With maxRetries = R the pipeline performs up to
// R+1 attempts and reports R+1 on total failure; the backoff before retry
// k+1 is retryDelay * k.
func (p *FileProcessor) processFileWithRetry(ctx context.Context, path string) model.FileResult {
	var lastErr *model.FileError

	for attempt := 1; ; attempt++ {
		content, err := p.attempt(ctx, path)
		if err == nil {
			return model.FileResult{Path: path, Content: content}
		}

		lastErr = model.NewFileError(model.ClassifyReadError(err), path, err.Error(), attempt, err)
		p.logger.Warn("file attempt failed",
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.String("kind", lastErr.Kind.String()),
			zap.Error(err))

		if attempt > p.opts.MaxRetries {
			break
		}
		if sleepErr := p.clock.Sleep(ctx, backoffDelay(p.opts.RetryDelay, attempt)); sleepErr != nil {
			break
		}
	}

	p.emitTerminal(lastErr)
	return model.FileResult{Path: path, Err: lastErr}
}

// backoffDelay is the linear retry policy: base times the attempt number
// that just failed.
func backoffDelay(base time.Duration, attempt int) time.Duration {
	return base * time.Duration(attempt)
}

// attempt performs one validate-and-read round.
func (p *FileProcessor) attempt(ctx context.Context, path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, model.ErrNotRegularFile)
	}
	if p.opts.SkipLargeFiles && info.Size() > p.opts.MaxFileSize {
		return nil, fmt.Errorf("%s: %w (%d > %d bytes)",
			path, model.ErrFileTooLarge, info.Size(), p.opts.MaxFileSize)
	}

	p.emit(model.Event{Kind: model.EventStart, Path: path})

	readCtx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	content, err := p.readFn(readCtx, path, info.Size())
	if err != nil {
		return nil, err
	}

	p.emit(model.Event{Kind: model.EventComplete, Path: path, Content: content})
	return content, nil
}

// readFileChunked reads the file in chunks, checking the deadline between
// chunks and reporting progress at most once per progress interval.
func (p *FileProcessor) readFileChunked(ctx context.Context, path string, size int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, p.opts.ChunkSize)
	content := make([]byte, 0, size)
	lastProgress := p.clock.Now()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, readErr := f.Read(buf)
		if n > 0 {
			content = append(content, buf[:n]...)
			if p.clock.Since(lastProgress) >= p.opts.ProgressInterval {
				p.emit(model.Event{
					Kind: model.EventProgress,
					Path: path,
					Progress: &model.Progress{
						BytesRead:  int64(len(content)),
						TotalBytes: size,
						Percent:    progressPercent(int64(len(content)), size),
					},
				})
				lastProgress = p.clock.Now()
			}
		}
		if readErr == io.EOF {
			return content, nil
		}
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
	}
}

// progressPercent guards the divide-by-zero for empty files.
func progressPercent(read, total int64) float64 {
	if total <= 0 {
		return 100
	}
	return float64(read) / float64(total) * 100
}

func (p *FileProcessor) emitTerminal(fe *model.FileError) {
	if fe.Kind == model.KindTooLarge {
		p.emit(model.Event{Kind: model.EventSkip, Path: fe.Path, Reason: fe.Message})
		return
	}
	p.emit(model.Event{Kind: model.EventError, Path: fe.Path, Err: fe})
}

// emit publishes a lifecycle event without ever blocking the pipeline.
// Late emissions after the channel closed are silently discarded; they can
// happen when the consumer abandons iteration mid-batch.
func (p *FileProcessor) emit(ev model.Event) {
	p.eventMu.Lock()
	defer p.eventMu.Unlock()

	if p.eventsClosed {
		return
	}
	select {
	case p.events <- ev:
	default:
	}
}
