package cli

import (
	"fmt"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"

	"github.com/uamcli/uamcli/bytefmt"
	"github.com/uamcli/uamcli/client"
)

// ProgressUpdate contains deltas for each tracked value.
type ProgressUpdate struct {
	FilesWritten int64
	BytesWritten int64
}

// ProgressTracker tracks the progress of a transfer.
type ProgressTracker interface {
	Update(*ProgressUpdate)
	Close() error
}

// NopTracker implements ProgressTracker but does nothing.
type NopTracker struct{}

func (t *NopTracker) Update(u *ProgressUpdate) {}
func (t *NopTracker) Close() error             { return nil }

// newTracker selects the tracker for a transfer. Total is bytes when
// unitBytes is set, otherwise a file count.
func newTracker(total int64, unitBytes bool, quiet bool) ProgressTracker {
	if quiet || total == 0 {
		return &NopTracker{}
	}
	return newBarTracker(total, unitBytes)
}

// trackerProgress adapts a tracker to the client's per-file callback.
func trackerProgress(t ProgressTracker) client.ProgressFunc {
	return func(path string, size int64) {
		t.Update(&ProgressUpdate{FilesWritten: 1, BytesWritten: size})
	}
}

// barTracker renders a progress bar.
type barTracker struct {
	progress  *mpb.Progress
	bar       *mpb.Bar
	unitBytes bool

	lock  sync.Mutex
	total ProgressUpdate
	start time.Time
}

func newBarTracker(total int64, unitBytes bool) ProgressTracker {
	progress := mpb.New(mpb.WithWidth(64))

	var counter decor.Decorator
	if unitBytes {
		counter = decor.CountersKibiByte("% .2f / % .2f")
	} else {
		counter = decor.CountersNoUnit("%d / %d files")
	}
	bar := progress.AddBar(total,
		mpb.PrependDecorators(counter),
		mpb.AppendDecorators(decor.Percentage()),
	)

	return &barTracker{
		progress:  progress,
		bar:       bar,
		unitBytes: unitBytes,
		start:     time.Now(),
	}
}

func (t *barTracker) Update(u *ProgressUpdate) {
	t.lock.Lock()
	t.total.FilesWritten += u.FilesWritten
	t.total.BytesWritten += u.BytesWritten
	t.lock.Unlock()

	if t.unitBytes {
		t.bar.IncrInt64(u.BytesWritten)
	} else {
		t.bar.IncrInt64(u.FilesWritten)
	}
}

func (t *barTracker) Close() error {
	t.bar.SetTotal(-1, true)
	t.progress.Wait()

	t.lock.Lock()
	defer t.lock.Unlock()

	elapsed := time.Since(t.start)
	fmt.Printf(
		"Completed %d files, %s in %s (%s)\n",
		t.total.FilesWritten,
		bytefmt.FormatBytes(t.total.BytesWritten),
		elapsed.Truncate(time.Second/10),
		bytefmt.FormatRate(t.total.BytesWritten, elapsed),
	)
	return nil
}
