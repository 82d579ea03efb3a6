package background

import (
	"fmt"
	"sync"
	"time"

	"gitee.com/czyczk/chain-auth-gateway/internal/store"
	log "github.com/sirupsen/logrus"
)

// SessionSweeper 周期性清除过期会话以约束内存占用。会话的过期判定本身是惰性的（校验时比对时间戳），清扫器只是可选的回收手段。
type SessionSweeper struct {
	SessionStore store.SessionStore
	Interval     time.Duration
	wg           sync.WaitGroup
	chanQuit     chan int
	isStarting   bool
	isStarted    bool
	isStopping   bool
}

func NewSessionSweeper(sessionStore store.SessionStore, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		SessionStore: sessionStore,
		Interval:     interval,
		wg:           sync.WaitGroup{},
		chanQuit:     make(chan int),
		isStarting:   false,
		isStarted:    false,
		isStopping:   false,
	}
}

// Start starts the sweeper. Don't start the sweeper again if it has been started.
func (s *SessionSweeper) Start() error {
	log.Infoln("正在启动会话清扫器...")

	if s.isStarting {
		return fmt.Errorf("会话清扫器正在启动")
	} else if s.isStarted {
		return fmt.Errorf("会话清扫器已启动")
	}

	s.isStarting = true

	s.wg.Add(1)
	go s.runSweeperWorker()

	s.isStarting = false
	s.isStarted = true
	log.Infoln("会话清扫器已启动。")

	return nil
}

func (s *SessionSweeper) runSweeperWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			evicted, err := s.SessionStore.EvictExpired(time.Now())
			if err != nil {
				log.Errorf("会话清扫器无法清除过期会话: %v", err)
				continue
			}
			if evicted > 0 {
				log.Debugf("会话清扫器清除了 %v 个过期会话。", evicted)
			}
		case <-s.chanQuit:
			return
		}
	}
}

// Stop stops the sweeper.
//
// Returns
//   a wait group that can be used to block the caller Go routine
func (s *SessionSweeper) Stop() (*sync.WaitGroup, error) {
	// Don't send stop signals again if the sweeper has already been called to stop.
	if s.isStopping {
		return nil, fmt.Errorf("会话清扫器正在停止")
	} else if !s.isStarted {
		return nil, fmt.Errorf("会话清扫器已停止")
	}

	s.isStopping = true
	s.chanQuit <- 0
	s.isStarted = false
	s.isStopping = false

	return &s.wg, nil
}
