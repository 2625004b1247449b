package backend

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gioui.org/x/explorer"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"git.sr.ht/~whereswaldon/curvechart/chart"
)

// Session is one snapshot of a loaded trace.
type Session struct {
	ID string
	// Source names where the trace came from.
	Source string
	Lines  []chart.CurveLine
	// Done is set once the source is exhausted and will not grow.
	Done bool
	Err  error
}

type RWBox[T any] struct {
	t    T
	lock sync.RWMutex
}

func (r *RWBox[T]) Read(f func(*T)) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	f(&r.t)
}

func (r *RWBox[T]) Write(f func(*T)) {
	r.lock.Lock()
	defer r.lock.Unlock()
	f(&r.t)
}

type InputKind uint8

const (
	KindSample InputKind = iota
	KindHeadings
)

type InputData struct {
	Kind InputKind
	Sample
	Headings      []Heading
	HeadingSeries []int
}

// Options tune a Datasource.
type Options struct {
	// Follow keeps regular files open at EOF and resumes when they grow.
	Follow bool
	// Interval is the minimum spacing between published snapshots.
	Interval time.Duration
	Logger   *log.Logger
}

// Datasource loads CSV traces and publishes snapshots of the most recently
// loaded one to every stream.
type Datasource struct {
	opts          Options
	log           *log.Logger
	seriesCounter atomic.Int32

	lock    sync.Mutex
	current Session
	cancel  context.CancelFunc
	subs    map[chan Session]struct{}
	appCtx  context.Context
}

func NewDatasource(appCtx context.Context, opts Options) *Datasource {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.Interval <= 0 {
		opts.Interval = 100 * time.Millisecond
	}
	return &Datasource{
		opts:   opts,
		log:    logger.With("component", "datasource"),
		subs:   make(map[chan Session]struct{}),
		appCtx: appCtx,
	}
}

// Stream delivers the current session and every later snapshot until ctx
// ends. A slow reader only ever sees the newest snapshot.
func (d *Datasource) Stream(ctx context.Context) <-chan Session {
	ch := make(chan Session, 1)
	d.lock.Lock()
	d.subs[ch] = struct{}{}
	if d.current.ID != "" {
		ch <- d.current
	}
	d.lock.Unlock()
	go func() {
		<-ctx.Done()
		d.lock.Lock()
		defer d.lock.Unlock()
		delete(d.subs, ch)
		close(ch)
	}()
	return ch
}

func (d *Datasource) publish(s Session) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if s.ID != d.current.ID {
		// Superseded by a newer load.
		return
	}
	d.current = s
	for ch := range d.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

// Current returns the latest snapshot.
func (d *Datasource) Current() Session {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.current
}

var sessionSeq atomic.Uint64

func generateSessionID() string {
	ts := strings.Replace(time.Now().UTC().Format("20060102150405.000000000"), ".", "", 1)
	return ts + "-" + strconv.FormatUint(sessionSeq.Add(1), 10)
}

// LoadFromFile asks the user for a trace and loads it. It blocks until the
// user picked a file.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) (string, error) {
	file, err := expl.ChooseFile()
	if err != nil {
		return "", fmt.Errorf("choosing trace: %w", err)
	}
	name := "trace"
	if f, ok := file.(interface{ Name() string }); ok {
		name = f.Name()
	}
	return d.LoadFromStream(name, file), nil
}

// LoadPath opens and loads the trace at path. "-" reads standard input.
func (d *Datasource) LoadPath(path string) (string, error) {
	if path == "-" {
		return d.LoadFromStream("stdin", os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening trace: %w", err)
	}
	return d.LoadFromStream(filepath.Base(path), f), nil
}

// LoadFromStream replaces the current session with one reading src.
func (d *Datasource) LoadFromStream(name string, src io.ReadCloser) string {
	id := generateSessionID()
	d.LoadFromStreamWithID(id, name, src)
	return id
}

func (d *Datasource) LoadFromStreamWithID(sessionID, name string, src io.ReadCloser) {
	ctx, cancel := context.WithCancel(d.appCtx)
	d.lock.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.cancel = cancel
	d.current = Session{ID: sessionID, Source: name}
	d.lock.Unlock()
	d.publish(Session{ID: sessionID, Source: name})
	go d.recordSession(ctx, sessionID, name, src)
}

func (d *Datasource) recordSession(ctx context.Context, sessionID, name string, src io.ReadCloser) {
	defer src.Close()
	logger := d.log.With("session", sessionID, "source", name)
	var data RWBox[Dataset]
	snapshot := func(done bool, err error) Session {
		s := Session{ID: sessionID, Source: name, Done: done, Err: err}
		data.Read(func(ds *Dataset) {
			s.Lines = ds.Lines()
		})
		return s
	}
	deb := newDebouncer(rate.NewLimiter(rate.Every(d.opts.Interval), 1), func() {
		d.publish(snapshot(false, nil))
	})

	inputs := make(chan InputData, 1024)
	errs := make(chan error, 1)
	go func() {
		defer close(inputs)
		follow, stop := d.follower(src, logger)
		defer stop()
		errs <- d.readSource(ctx, src, follow, inputs)
	}()
	for input := range inputs {
		switch input.Kind {
		case KindHeadings:
			data.Write(func(ds *Dataset) {
				ds.SetHeadings(input.Headings, input.HeadingSeries)
			})
		case KindSample:
			inserted := false
			data.Write(func(ds *Dataset) {
				inserted = ds.Insert(input.Sample)
			})
			if !inserted {
				logger.Debug("dropped duplicate sample", "x", input.X)
				continue
			}
		}
		deb.OnChanged()
	}
	deb.Wait()
	err := <-errs
	if errors.Is(err, context.Canceled) {
		return
	}
	if err != nil {
		logger.Error("reading trace", "err", err)
	}
	d.publish(snapshot(true, err))
}

// follower returns a function blocking until src grew, or nil when src cannot
// be followed. stop releases the watcher and must always be called.
func (d *Datasource) follower(src io.Reader, logger *log.Logger) (follow func(context.Context) error, stop func()) {
	stop = func() {}
	if !d.opts.Follow {
		return nil, stop
	}
	f, ok := src.(*os.File)
	if !ok {
		return nil, stop
	}
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return nil, stop
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("not following trace", "err", err)
		return nil, stop
	}
	if err := watcher.Add(f.Name()); err != nil {
		watcher.Close()
		logger.Warn("not following trace", "err", err)
		return nil, stop
	}
	stop = func() {
		if err := watcher.Close(); err != nil {
			logger.Debug("closing trace watcher", "err", err)
		}
	}
	follow = func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev, ok := <-watcher.Events:
				if !ok {
					return io.EOF
				}
				if ev.Has(fsnotify.Write) {
					return nil
				}
				if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
					return io.EOF
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return io.EOF
				}
				return fmt.Errorf("watching trace: %w", err)
			}
		}
	}
	return follow, stop
}

// readSource parses a trace whose first column is x and whose remaining
// columns are series. At EOF it waits on follow, if given, and resumes.
func (d *Datasource) readSource(ctx context.Context, source io.Reader, follow func(context.Context) error, samplesChan chan<- InputData) error {
	csvReader := csv.NewReader(NewLineReader(source))
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	var (
		rawHeadings []string
		err         error
	)
	for {
		rawHeadings, err = csvReader.Read()
		if errors.Is(err, io.EOF) && follow != nil {
			if err := follow(ctx); err != nil {
				return finishedErr(err)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("reading CSV headings: %w", finishedErr(err))
		}
		break
	}
	if len(rawHeadings) < 2 {
		return fmt.Errorf("reading CSV headings: need an x column and at least one series, got %d columns", len(rawHeadings))
	}
	headings := make([]Heading, 0, len(rawHeadings)-1)
	headingSeries := make([]int, 0, len(rawHeadings)-1)
	for _, raw := range rawHeadings[1:] {
		headings = append(headings, ParseHeading(raw))
		headingSeries = append(headingSeries, int(d.seriesCounter.Add(1)))
	}
	if !send(ctx, samplesChan, InputData{
		Kind:          KindHeadings,
		Headings:      headings,
		HeadingSeries: headingSeries,
	}) {
		return ctx.Err()
	}
	// Continously parse the CSV data and send it on the channel.
	for {
		rec, err := csvReader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) && follow != nil {
				if err := follow(ctx); err != nil {
					return finishedErr(err)
				}
				continue
			}
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				d.log.Warn("skipping malformed row", "err", err)
				continue
			}
			return finishedErr(err)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			d.log.Warn("failed parsing x", "value", rec[0], "err", err)
			continue
		}
		for i := 1; i < len(rec) && i <= len(headingSeries); i++ {
			cell := strings.TrimSpace(rec[i])
			if len(cell) < 1 {
				// Skip null cells.
				continue
			}
			y, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				d.log.Warn("failed parsing cell", "column", i, "value", cell, "err", err)
				continue
			}
			if !send(ctx, samplesChan, InputData{
				Kind: KindSample,
				Sample: Sample{
					Series: headingSeries[i-1],
					Point:  chart.Point{X: x, Y: y},
				},
			}) {
				return ctx.Err()
			}
		}
	}
}

func send(ctx context.Context, ch chan<- InputData, in InputData) bool {
	select {
	case ch <- in:
		return true
	case <-ctx.Done():
		return false
	}
}

// finishedErr maps the end of a trace onto a nil error.
func finishedErr(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
