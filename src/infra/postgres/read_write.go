package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReadWriteClient splits candidate reads from writes. Without a replica URL
// both pools are the same primary pool.
type ReadWriteClient struct {
	readPool  *pgxpool.Pool
	writePool *pgxpool.Pool
}

func NewReadWriteClient(ctx context.Context, writeURL string, readURL string, maxConnections int) (*ReadWriteClient, error) {
	writePool, err := NewPostgresClient(ctx, writeURL, maxConnections)
	if err != nil {
		return nil, err
	}

	if readURL == "" || readURL == writeURL {
		return &ReadWriteClient{readPool: writePool, writePool: writePool}, nil
	}

	readPool, err := NewPostgresClient(ctx, readURL, maxConnections)
	if err != nil {
		writePool.Close()
		return nil, err
	}

	return &ReadWriteClient{
		readPool:  readPool,
		writePool: writePool,
	}, nil
}

func (rwc *ReadWriteClient) GetReadPool() *pgxpool.Pool {
	return rwc.readPool
}

func (rwc *ReadWriteClient) GetWritePool() *pgxpool.Pool {
	return rwc.writePool
}

func (rwc *ReadWriteClient) Ping(ctx context.Context) error {
	if err := rwc.writePool.Ping(ctx); err != nil {
		return err
	}
	if rwc.readPool != rwc.writePool {
		return rwc.readPool.Ping(ctx)
	}
	return nil
}

func (rwc *ReadWriteClient) Close() {
	if rwc.readPool != rwc.writePool {
		rwc.readPool.Close()
	}
	rwc.writePool.Close()
}
