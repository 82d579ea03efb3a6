package idutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSnowflakeIdIsUniqueWithinTheSameMillisecond(t *testing.T) {
	// 紧凑循环中的调用大量落在同一毫秒内，生成的 ID 仍须互不相同
	seen := make(map[string]bool)

	for i := 0; i < 2000; i++ {
		id, err := GenerateSnowflakeId()
		if isNoError := assert.NoError(t, err); !isNoError {
			t.FailNow()
		}

		if isNotSeen := assert.False(t, seen[id], "生成了重复的 ID: %v", id); !isNotSeen {
			t.FailNow()
		}
		seen[id] = true
	}
}
