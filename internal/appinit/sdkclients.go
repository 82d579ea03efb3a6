package appinit

import (
	"fmt"

	"gitee.com/czyczk/chain-auth-gateway/internal/global"
	"github.com/hyperledger/fabric-sdk-go/pkg/client/channel"
	"github.com/hyperledger/fabric-sdk-go/pkg/core/config"
	"github.com/hyperledger/fabric-sdk-go/pkg/fabsdk"
	errors "github.com/pkg/errors"
)

// SetupSDK creates a Fabric SDK instance from the specified config file(s).
func SetupSDK(configFile string) error {
	configProvider := config.FromFile(configFile)
	sdk, err := fabsdk.New(configProvider)
	if err != nil {
		return fmt.Errorf("failed initializing Fabric SDK: %v", err)
	}
	global.SDKInstance = sdk

	return nil
}

// InstantiateChannelClient creates a channel client for the user of the org on the channel as specified. The client will be available as singletons in `global.ChannelClientInstances`.
//
// Parameters:
//   the SDK instance
//   channel ID
//   organization name
//   user ID
func InstantiateChannelClient(sdk *fabsdk.FabricSDK, channelID, orgName, userID string) error {
	if global.ChannelClientInstances == nil {
		global.ChannelClientInstances = make(map[string]map[string]map[string]*channel.Client)
	}

	if global.ChannelClientInstances[channelID] == nil {
		global.ChannelClientInstances[channelID] = make(map[string]map[string]*channel.Client)
	}

	if global.ChannelClientInstances[channelID][orgName] == nil {
		global.ChannelClientInstances[channelID][orgName] = make(map[string]*channel.Client)
	}

	if global.ChannelClientInstances[channelID][orgName][userID] != nil {
		return fmt.Errorf("%v@%v 在通道 %v 上的通道客户端已实例化", userID, orgName, channelID)
	}

	// Create a channel client context using the SDK instance
	channelProvider := sdk.ChannelContext(channelID, fabsdk.WithUser(userID), fabsdk.WithOrg(orgName))
	channelClient, err := channel.New(channelProvider)
	if err != nil {
		return errors.Wrapf(err, "无法为 %v@%v 创建通道 %v 的通道客户端", userID, orgName, channelID)
	}

	global.ChannelClientInstances[channelID][orgName][userID] = channelClient

	return nil
}
