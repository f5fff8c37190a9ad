package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"blogmirror/app/cfg"
	"blogmirror/app/database"
	"blogmirror/app/feed"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	postRepo         database.PostRepository
	httpClient       *http.Client
	parser           *feed.Parser
	syncer           *feed.Syncer
	contentExtractor *feed.ContentExtractor
	feedURL          string
	userAgent        string
	extractContent   bool
	extractLimit     int
	interval         time.Duration
	syncInterval     time.Duration
	workerCount      int
	lastSyncedAt     *time.Time
	ctx              context.Context
	cancel           context.CancelFunc
	wg               sync.WaitGroup
	taskQueue        chan TaskInterface
}

func NewScheduler(c *cfg.Cfg, postRepo database.PostRepository, httpClient *http.Client,
	parser *feed.Parser, syncer *feed.Syncer, contentExtractor *feed.ContentExtractor) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		postRepo:         postRepo,
		httpClient:       httpClient,
		parser:           parser,
		syncer:           syncer,
		contentExtractor: contentExtractor,
		feedURL:          c.FeedURL,
		userAgent:        c.UserAgent,
		extractContent:   c.ExtractContent,
		extractLimit:     c.RecentPostCount,
		interval:         time.Duration(c.SchedulerInterval) * time.Second,
		syncInterval:     time.Duration(c.SyncInterval) * time.Second,
		workerCount:      c.WorkerCount,
		ctx:              ctx,
		cancel:           cancel,
		taskQueue:        make(chan TaskInterface, 300),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// enqueueTasks runs on the ticker goroutine only, so lastSyncedAt needs
// no locking. Pushed feed deliveries bypass this gate entirely.
func (s *Scheduler) enqueueTasks() {
	now := time.Now().UTC()

	if ShouldSync(s.lastSyncedAt, s.syncInterval, now) {
		syncTask := NewSyncFeedTask(s.feedURL, s.httpClient, s.parser, s.syncer, s.userAgent)
		if err := s.EnqueueTask(syncTask); err != nil {
			slog.Warn("Failed to enqueue SyncFeedTask", "feed", s.feedURL, "error", err)
		} else {
			s.lastSyncedAt = &now
		}
	} else {
		slog.Debug("Feed not due for synchronization yet", "feed", s.feedURL, "last_synced_at", s.lastSyncedAt)
	}

	if s.extractContent {
		extractTask := NewExtractContentTask(s.feedURL, s.httpClient, s.contentExtractor, s.postRepo, s.userAgent, s.extractLimit)
		if err := s.EnqueueTask(extractTask); err != nil {
			slog.Warn("Failed to enqueue ExtractContentTask", "feed", s.feedURL, "error", err)
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "feed", task.GetFeedURL(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
