package redisclient

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigAddr(t *testing.T) {
	assert.Equal(t, "localhost:6379", Config{Host: "localhost", Port: 6379}.Addr())
}

func TestNew_UnreachableServer(t *testing.T) {
	// 占用一个端口后立即释放，保证无人监听
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := lis.Addr().(*net.TCPAddr).Port
	require.NoError(t, lis.Close())

	_, err = New(context.Background(), Config{Host: "127.0.0.1", Port: port, ConnTimeout: 1, ReadTimeout: 1, WriteTimeout: 1})
	assert.Error(t, err)
}
