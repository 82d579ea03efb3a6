package fabricverifier

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"time"

	"gitee.com/czyczk/chain-auth-gateway/internal/blockchain/chaincodectx"
	"gitee.com/czyczk/chain-auth-gateway/internal/blockchain/verifier"
	"gitee.com/czyczk/chain-auth-gateway/pkg/models/proof"
	"github.com/hyperledger/fabric-sdk-go/pkg/client/channel"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/tjfoc/gmsm/sm2"
)

// ChainVerifierFabricImpl 通过查询验证链码实现 `verifier.IChainVerifier`。所有调用都是只读查询，不产生链上状态。
type ChainVerifierFabricImpl struct {
	ctx *chaincodectx.FabricChaincodeCtx
	// 本地缓存的账户 SM2 公钥。命中时挑战签名在本地校验，避免一次链码往返。
	accountKeys map[string]*sm2.PublicKey
}

func NewChainVerifierFabricImpl(ctx *chaincodectx.FabricChaincodeCtx, accountKeys map[string]*sm2.PublicKey) *ChainVerifierFabricImpl {
	if accountKeys == nil {
		accountKeys = make(map[string]*sm2.PublicKey)
	}

	return &ChainVerifierFabricImpl{
		ctx:         ctx,
		accountKeys: accountKeys,
	}
}

// 链码返回的交易解码结果。过期时间以 RFC 3339 字符串表示。
type decodedTxResult struct {
	AuthorizingActor string `mapstructure:"authorizingActor"`
	Operation        string `mapstructure:"operation"`
	RefBlock         uint64 `mapstructure:"refBlock"`
	Expiration       string `mapstructure:"expiration"`
}

// 将序列化的交易解码为结构化形式。
//
// 参数：
//   序列化的交易本体
//
// 返回：
//   结构化交易
func (v *ChainVerifierFabricImpl) DecodeTransaction(serializedPayload []byte) (*proof.StructuredTx, error) {
	chaincodeFcn := "decodeTransaction"
	channelReq := channel.Request{
		ChaincodeID: v.ctx.ChaincodeID,
		Fcn:         chaincodeFcn,
		Args:        [][]byte{[]byte(base64.StdEncoding.EncodeToString(serializedPayload))},
	}

	resp, err := queryChannelRequestWithTimer(v.ctx.ChannelClient, &channelReq, "解码交易")
	if err != nil {
		return nil, verifier.GetClassifiedError(chaincodeFcn, err)
	}

	var resultAsMap map[string]interface{}
	if err := json.Unmarshal(resp.Payload, &resultAsMap); err != nil {
		return nil, errors.Wrap(err, "无法解析交易解码结果")
	}

	var result decodedTxResult
	if err := mapstructure.Decode(resultAsMap, &result); err != nil {
		return nil, errors.Wrap(err, "无法解析交易解码结果")
	}

	expiration, err := time.Parse(time.RFC3339, result.Expiration)
	if err != nil {
		return nil, errors.Wrap(err, "无法解析交易过期时间")
	}

	return &proof.StructuredTx{
		AuthorizingActor: result.AuthorizingActor,
		Operation:        result.Operation,
		RefBlock:         result.RefBlock,
		Expiration:       expiration,
	}, nil
}

// 校验交易的签名集。返回 false 表示签名验证未通过；error 只表示传输层故障。
//
// 参数：
//   结构化交易
//   签名序列
//
// 返回：
//   签名集是否有效
func (v *ChainVerifierFabricImpl) VerifySignatures(tx *proof.StructuredTx, signatures []string) (bool, error) {
	txBytes, err := json.Marshal(tx)
	if err != nil {
		return false, errors.Wrap(err, "无法序列化结构化交易")
	}

	signaturesBytes, err := json.Marshal(signatures)
	if err != nil {
		return false, errors.Wrap(err, "无法序列化签名序列")
	}

	chaincodeFcn := "verifySignatures"
	channelReq := channel.Request{
		ChaincodeID: v.ctx.ChaincodeID,
		Fcn:         chaincodeFcn,
		Args:        [][]byte{txBytes, signaturesBytes},
	}

	resp, err := queryChannelRequestWithTimer(v.ctx.ChannelClient, &channelReq, "校验交易签名集")
	if err != nil {
		return false, verifier.GetClassifiedError(chaincodeFcn, err)
	}

	return parseBoolPayload(resp.Payload)
}

// 校验账户对规范消息串的签名。配置中缓存了账户公钥时在本地完成，否则回落到链码查询。
//
// 参数：
//   规范消息串
//   签名
//   账户身份
//
// 返回：
//   签名是否有效
func (v *ChainVerifierFabricImpl) VerifySignature(canonicalMessage string, signature string, accountIdentity string) (bool, error) {
	if pubKey, ok := v.accountKeys[accountIdentity]; ok {
		sigBytes, err := base64.StdEncoding.DecodeString(signature)
		if err != nil {
			// 无法解码的签名视作验证不通过，而非传输层故障
			return false, nil
		}

		return pubKey.Verify([]byte(canonicalMessage), sigBytes), nil
	}

	chaincodeFcn := "verifySignature"
	channelReq := channel.Request{
		ChaincodeID: v.ctx.ChaincodeID,
		Fcn:         chaincodeFcn,
		Args:        [][]byte{[]byte(canonicalMessage), []byte(signature), []byte(accountIdentity)},
	}

	resp, err := queryChannelRequestWithTimer(v.ctx.ChannelClient, &channelReq, "校验挑战签名")
	if err != nil {
		return false, verifier.GetClassifiedError(chaincodeFcn, err)
	}

	return parseBoolPayload(resp.Payload)
}

func parseBoolPayload(payload []byte) (bool, error) {
	result, err := strconv.ParseBool(string(payload))
	if err != nil {
		return false, errors.Wrap(err, "无法解析链码返回的验证结果")
	}

	return result, nil
}
