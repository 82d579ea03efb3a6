package service

import (
	"gitee.com/czyczk/chain-auth-gateway/internal/blockchain/verifier"
	"gitee.com/czyczk/chain-auth-gateway/internal/store"
)

// Info holds the collaborators shared by the services: the chain verifier, the session store and the IPFS API address.
type Info struct {
	ChainVerifier verifier.IChainVerifier
	SessionStore  store.SessionStore
	IPFSAPI       string
}
