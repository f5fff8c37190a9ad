package api

import (
	"net/http"

	"blogmirror/app/database"
	"blogmirror/app/feed"
	"blogmirror/app/hub"
	"blogmirror/app/tasks"
)

type Handler struct {
	postRepo   database.PostRepository
	registry   *hub.Registry
	parser     *feed.Parser
	syncer     *feed.Syncer
	scheduler  tasks.TaskSchedulerInterface
	httpClient *http.Client

	feedURL         string
	hostName        string
	userAgent       string
	recentPostCount int
	version         string
}
