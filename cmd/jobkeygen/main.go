package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
)

func generateJobKey() (string, error) {
	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(keyBytes), nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go <job_name> [<job_name> ...]")
		return
	}

	// $ go run cmd/jobkeygen/main.go session-gc report-rebuild
	// jobKeys:
	//   session-gc: 2Wv...=
	//   report-rebuild: k9T...=
	fmt.Println("jobKeys:")
	for _, jobName := range os.Args[1:] {
		key, err := generateJobKey()
		if err != nil {
			fmt.Printf("无法生成任务密钥：%v\n", err)
			return
		}

		fmt.Printf("  %v: %v\n", jobName, key)
	}
}
