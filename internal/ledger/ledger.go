package ledger

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// Notary anchors content digests on the ledger by submitting NoOp calls to a
// pre-deployed application. The signing key is derived once from the deployer
// mnemonic and lives in process memory only.
type Notary struct {
	client  *algod.Client
	account crypto.Account
	appId   uint64
}

func New(algodURL, deployerMnemonic string, appId uint64) (*Notary, error) {
	const op = "ledger.New"

	client, err := algod.MakeClient(algodURL, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sk, err := mnemonic.ToPrivateKey(deployerMnemonic)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	account, err := crypto.AccountFromPrivateKey(sk)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Notary{client: client, account: account, appId: appId}, nil
}

// Notarize submits one application call carrying digest as the only argument
// and returns the network-assigned transaction id. One attempt, suggested
// fees, no confirmation wait.
func (n *Notary) Notarize(ctx context.Context, digest []byte) (string, error) {
	const op = "ledger.Notarize"

	sp, err := n.client.SuggestedParams().Do(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	txn, err := transaction.MakeApplicationNoOpTx(
		n.appId,
		[][]byte{digest},
		nil, nil, nil,
		sp,
		n.account.Address,
		nil,
		types.Digest{},
		[32]byte{},
		types.Address{},
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	_, stx, err := crypto.SignTransaction(n.account.PrivateKey, txn)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	txId, err := n.client.SendRawTransaction(stx).Do(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return txId, nil
}
