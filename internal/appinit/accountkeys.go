package appinit

import (
	"io/ioutil"

	"gitee.com/czyczk/chain-auth-gateway/pkg/sm2keyutils"
	"github.com/pkg/errors"
	"github.com/tjfoc/gmsm/sm2"
)

// LoadAccountKeys loads the SM2 public keys configured for accounts. The keys enable local challenge-signature
// verification without a chaincode round trip.
//
// Parameters:
//   the account identities -> the paths to their public key PEM files
//
// Returns:
//   the account identities -> the parsed public keys
func LoadAccountKeys(keyPaths map[string]string) (map[string]*sm2.PublicKey, error) {
	accountKeys := make(map[string]*sm2.PublicKey)

	for accountIdentity, path := range keyPaths {
		pemBytes, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "无法读取账户 %v 的公钥文件", accountIdentity)
		}

		pubKey, err := sm2keyutils.ConvertPEMToPublicKey(pemBytes)
		if err != nil {
			return nil, errors.Wrapf(err, "无法解析账户 %v 的公钥", accountIdentity)
		}

		accountKeys[accountIdentity] = pubKey
	}

	return accountKeys, nil
}
