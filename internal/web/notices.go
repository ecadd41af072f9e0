package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/agrosuite/dashboard/internal/hashmap"
	"github.com/agrosuite/dashboard/internal/render"
	"github.com/google/uuid"
)

const noticeCookie = "dash_notice"

// notice is a message displayed once on the page following a redirect
type notice struct {
	Level   string
	Message string
}

func (n notice) HTML() template.HTML {
	return render.Notice(n.Level, n.Message)
}

type noticeBoard struct {
	entries  *hashmap.ExpiringMap[uuid.UUID, notice]
	lifetime time.Duration
}

func newNoticeBoard(lifetime time.Duration) *noticeBoard {
	return &noticeBoard{
		entries:  hashmap.NewExpiring[uuid.UUID, notice](lifetime),
		lifetime: lifetime,
	}
}

// Push stores a notice and references it in a cookie
func (board *noticeBoard) Push(writer http.ResponseWriter, n notice) {
	id := uuid.New()
	board.entries.Set(id, n)
	http.SetCookie(writer, &http.Cookie{
		Name:     noticeCookie,
		Value:    id.String(),
		Path:     "/",
		MaxAge:   int(board.lifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the notice referenced by the request and forgets it
func (board *noticeBoard) Pop(writer http.ResponseWriter, request *http.Request) (notice, bool) {
	cookie, err := request.Cookie(noticeCookie)
	if err != nil {
		return notice{}, false
	}
	http.SetCookie(writer, &http.Cookie{
		Name:     noticeCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return notice{}, false
	}
	return board.entries.Take(id)
}
