package service

import (
	"bytes"
	"time"

	"gitee.com/czyczk/chain-auth-gateway/internal/utils/timingutils"
	shell "github.com/ipfs/go-ipfs-api"
	"github.com/pkg/errors"
)

func uploadBytesToIPFSWithTimer(ipfsAPI string, contentBytes []byte, syncUpload bool, errMsg string, timerMsg string) (cid string, err error) {
	defer timingutils.GetDeferrableTimingLogger(timerMsg)()

	// Each upload gets its own shell so that concurrent uploads of different sizes don't race on the timeout
	ipfsSh := shell.NewShell(ipfsAPI)

	// Increase timeout for large files
	if len(contentBytes) > 1073741824 {
		ipfsSh.SetTimeout(120 * time.Second)
	} else {
		ipfsSh.SetTimeout(30 * time.Second)
	}

	cid, err = ipfsSh.Add(bytes.NewReader(contentBytes))
	if err != nil {
		err = errors.Wrap(err, errMsg)
		return
	}

	// 同步上传时固定内容并等待存储网络确认
	if syncUpload {
		if err = ipfsSh.Pin(cid); err != nil {
			err = errors.Wrap(err, "无法在 IPFS 网络中固定上传的内容")
			return
		}
	}

	return
}
