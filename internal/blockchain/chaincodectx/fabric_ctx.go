package chaincodectx

import (
	"github.com/hyperledger/fabric-sdk-go/pkg/client/channel"
)

// FabricChaincodeCtx 包含查询验证链码所需的通道与身份信息。
type FabricChaincodeCtx struct {
	ChannelID     string
	OrgName       string
	Username      string
	ChaincodeID   string
	ChannelClient *channel.Client
}
