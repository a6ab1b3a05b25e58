package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrAcquireTimeout 表示在設定的等待時間內沒有可用連線
var ErrAcquireTimeout = errors.New("timed out waiting for a database connection")

// Pool 是有上限的資料庫連線池。
//
// 連線在需要時才建立，最多 max 條；超過上限的 Acquire 會阻塞等待，
// 直到有連線被 Release、ctx 結束，或超過 acquireTimeout（0 表示不限時）。
// 同一條連線不會同時交給兩個呼叫者。
type Pool struct {
	db             *sql.DB
	max            int
	acquireTimeout time.Duration
}

func NewPool(db *sql.DB, max int, acquireTimeout time.Duration) *Pool {
	db.SetMaxOpenConns(max)
	db.SetMaxIdleConns(max)
	return &Pool{db: db, max: max, acquireTimeout: acquireTimeout}
}

// Acquire 取得一條獨占連線，用完必須呼叫 Release
func (p *Pool) Acquire(ctx context.Context) (*sql.Conn, error) {
	if p.acquireTimeout <= 0 {
		return p.db.Conn(ctx)
	}

	acqCtx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()

	conn, err := p.db.Conn(acqCtx)
	if err != nil {
		// 呼叫者自己的 ctx 沒結束，代表是等待時間用完
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w after %s", ErrAcquireTimeout, p.acquireTimeout)
		}
		return nil, err
	}
	return conn, nil
}

// Release 把連線還給連線池
func (p *Pool) Release(conn *sql.Conn) error {
	if conn == nil {
		return nil
	}
	return conn.Close()
}

// Ping 透過連線池取出一條連線並確認可用
func (p *Pool) Ping(ctx context.Context) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer p.Release(conn)

	return conn.PingContext(ctx)
}

func (p *Pool) Max() int {
	return p.max
}

func (p *Pool) Stats() sql.DBStats {
	return p.db.Stats()
}
