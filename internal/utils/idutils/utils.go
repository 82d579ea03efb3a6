package idutils

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
)

var (
	sfNode     *snowflake.Node
	sfNodeErr  error
	sfNodeOnce sync.Once
)

// GenerateSnowflakeId 用进程内共享的雪花节点生成 ID。节点只创建一次：其毫秒内序列计数器在调用间保持，同一毫秒内的多次调用也得到互不相同的 ID。
func GenerateSnowflakeId() (string, error) {
	sfNodeOnce.Do(func() {
		sfNode, sfNodeErr = snowflake.NewNode(1)
	})
	if sfNodeErr != nil {
		return "", errors.Wrap(sfNodeErr, "无法生成 ID")
	}

	id := sfNode.Generate().String()
	return id, nil
}
