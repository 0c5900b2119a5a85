package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gympro/internal/client/client"
	"github.com/dmitrijs2005/gympro/internal/client/config"
	"github.com/dmitrijs2005/gympro/internal/client/connectivity"
	"github.com/dmitrijs2005/gympro/internal/client/localdb"
	"github.com/dmitrijs2005/gympro/internal/client/models"
	"github.com/dmitrijs2005/gympro/internal/client/repositories/exercises"
	"github.com/dmitrijs2005/gympro/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gympro/internal/client/repositories/workouts"
	"github.com/dmitrijs2005/gympro/internal/client/services"
	"github.com/dmitrijs2005/gympro/internal/client/syncstate"
	"github.com/dmitrijs2005/gympro/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
	Restore(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
}

type WorkoutService interface {
	Create(ctx context.Context, w models.Workout) (string, error)
	Update(ctx context.Context, w models.Workout) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (models.Workout, error)
	ListByParent(ctx context.Context, userID string) iter.Seq2[[]models.Workout, error]
}

type ExerciseService interface {
	Create(ctx context.Context, e models.Exercise) (string, error)
	Update(ctx context.Context, e models.Exercise) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (models.Exercise, error)
	ListByParent(ctx context.Context, workoutID string) iter.Seq2[[]models.Exercise, error]
	Reorder(ctx context.Context, items []models.Exercise) error
	UploadImage(ctx context.Context, exerciseID, path string) (string, error)
}

type SyncIndicator interface {
	IsSyncing() bool
	Subscribe(ctx context.Context) (<-chan bool, func())
}

type LastSyncReader interface {
	LastSync(ctx context.Context) (time.Time, bool, error)
}

type App struct {
	auth      AuthService
	workouts  WorkoutService
	exercises ExerciseService
	online    connectivity.Monitor
	sync      SyncIndicator
	prefs     LastSyncReader
	logger    logging.Logger

	listWait time.Duration
	reader   *bufio.Reader
	out      io.Writer
	closers  []func() error

	mu      sync.Mutex
	userID  string
	mode    Mode
	syncing bool
}

// NewApp opens the local cache, dials the server and wires the repositories.
func NewApp(ctx context.Context, cfg *config.Config, l logging.Logger) (*App, error) {
	db, err := localdb.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	c, err := client.NewGRPCClient(cfg.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var online connectivity.Monitor
	if cfg.ForceOffline {
		online = connectivity.NewManual(false)
	} else {
		online = connectivity.NewPingMonitor(c, cfg.OnlineCheckInterval, cfg.ProbeTimeout, l)
	}

	coordinator := syncstate.NewCoordinator()
	wCache := workouts.NewSQLiteRepository(db)
	meta := metadata.NewSQLiteRepository(db)
	prefs := services.NewPreferences(meta)
	auth := services.NewAuthService(c, meta, wCache)

	a := &App{
		auth: auth,
		workouts: services.NewWorkoutRepository(
			wCache, client.NewWorkouts(c), online, coordinator, prefs, l),
		exercises: services.NewExerciseRepository(
			exercises.NewSQLiteRepository(db), client.NewExercises(c),
			client.NewAssets(c, http.DefaultClient), auth, online, coordinator, l),
		online:   online,
		sync:     coordinator,
		prefs:    prefs,
		logger:   l.With("module", "cli"),
		listWait: cfg.ListWait,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		closers:  []func() error{c.Close, db.Close},
	}
	return a, nil
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userID != ""
}

func (a *App) currentUser() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userID
}

func (a *App) setUser(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userID = id
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "Switched mode", "mode", mode)
	}
}

func (a *App) setSyncing(v bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.syncing = v
}

func (a *App) status() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := string(a.mode)
	if a.userID != "" {
		s = a.userID + " " + s
	}
	if a.syncing {
		s += ", syncing"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// watch follows the connectivity and sync indicators until ctx is done.
func (a *App) watch(ctx context.Context) {
	modes, stopModes := a.online.Subscribe(ctx)
	defer stopModes()
	syncing, stopSync := a.sync.Subscribe(ctx)
	defer stopSync()

	for {
		select {
		case <-ctx.Done():
			return
		case online, ok := <-modes:
			if !ok {
				return
			}
			if online {
				a.setMode(ModeOnline)
			} else {
				a.setMode(ModeOffline)
			}
		case v, ok := <-syncing:
			if !ok {
				return
			}
			a.setSyncing(v)
		}
	}
}

// Run restores the stored session and serves the REPL until exit or ctx is
// done.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if userID, err := a.auth.Restore(ctx); err != nil {
		a.logger.Warn(ctx, "Session restore failed", "error", err)
	} else {
		a.setUser(userID)
	}

	go a.watch(ctx)

	fmt.Fprintln(a.out, "gympro (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, a.out)
}
