package tasks

import (
	"testing"
)

func TestNewTask(t *testing.T) {
	task := NewTask(TaskTypeSyncFeed, "https://blog.example.com/feeds/posts/default")

	if task.GetType() != TaskTypeSyncFeed {
		t.Errorf("Expected type %s, got: %s", TaskTypeSyncFeed, task.GetType())
	}
	if task.GetFeedURL() != "https://blog.example.com/feeds/posts/default" {
		t.Errorf("Unexpected feed URL: %s", task.GetFeedURL())
	}
	if task.GetID() == "" {
		t.Error("Expected a generated task id")
	}
	if task.GetRetryCount() != 0 {
		t.Errorf("Expected zero retries, got: %d", task.GetRetryCount())
	}
}

func TestTaskRetryBudget(t *testing.T) {
	task := NewTask(TaskTypeExtractContent, "https://blog.example.com/feeds/posts/default")

	for i := 0; i < DefaultMaxRetries; i++ {
		if !task.CanRetry() {
			t.Fatalf("Expected retry %d to be allowed", i+1)
		}
		task.IncrementRetryCount()
	}

	if task.CanRetry() {
		t.Error("Expected retries to be exhausted")
	}
	if task.GetRetryCount() != DefaultMaxRetries {
		t.Errorf("Expected %d retries, got: %d", DefaultMaxRetries, task.GetRetryCount())
	}
}
