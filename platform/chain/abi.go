package chain

import (
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

var (
	transferTopic     = keccak("Transfer(address,address,uint256)")
	balanceOfSelector = keccak("balanceOf(address)").Bytes()[:4]
)

func keccak(signature string) common.Hash {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))
	return common.BytesToHash(h.Sum(nil))
}
