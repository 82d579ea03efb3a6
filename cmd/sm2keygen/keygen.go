package main

import (
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"io/ioutil"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/tjfoc/gmsm/sm2"
	"github.com/tjfoc/gmsm/x509"
)

func generateKeys(dirKeys string, accounts []string) error {
	// Exit if the dir exists
	if _, err := os.Stat(dirKeys); os.IsExist(err) {
		return fmt.Errorf("the sm2 keys are already generated. Delete the folder first before running again")
	}

	// Create the dir
	os.Mkdir(dirKeys, 0755)

	for _, account := range accounts {
		// Generate keys
		privKey, err := sm2.GenerateKey(rand.Reader)
		if err != nil {
			return errors.Wrapf(err, "cannot generate a private key for '%v'", account)
		}

		pubKey := privKey.PublicKey

		// Create a directory for the account
		if _, err = os.Stat(path.Join(dirKeys, account)); os.IsNotExist(err) {
			os.Mkdir(path.Join(dirKeys, account), 0755)
		}

		// Save the private key and the public key to files
		// Private key
		privKeyDer, err := x509.MarshalSm2UnecryptedPrivateKey(privKey)
		if err != nil {
			return errors.Wrapf(err, "cannot save the private key for '%v'", account)
		}
		privKeyPemBlock := pem.Block{
			Type:  "PRIVATE KEY",
			Bytes: privKeyDer,
		}
		privKeyPem := pem.EncodeToMemory(&privKeyPemBlock)
		ioutil.WriteFile(path.Join(dirKeys, account, "sk"), privKeyPem, 0644)

		// Public key
		pubKeyDer, err := x509.MarshalSm2PublicKey(&pubKey)
		if err != nil {
			return errors.Wrapf(err, "cannot save the public key for '%v'", account)
		}
		pubKeyPemBlock := pem.Block{
			Type:  "PUBLIC KEY",
			Bytes: pubKeyDer,
		}
		pubKeyPem := pem.EncodeToMemory(&pubKeyPemBlock)
		ioutil.WriteFile(path.Join(dirKeys, account, account+".pem"), pubKeyPem, 0644)
	}

	return nil
}
