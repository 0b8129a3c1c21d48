package service

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/crypto/sha3"
)

const swapSignature = "swap(address,uint256)"

var entityIDPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// PreparerConfig holds the network parameters stamped on every payload.
type PreparerConfig struct {
	Network           string
	NodeAccountIDs    []string
	ValidDuration     time.Duration
	MaxTransactionFee int64
	SwapGas           int64
}

// transactionEnvelope is the unsigned transaction handed to the wallet.
// Field order is fixed so the encoding is byte-for-byte reproducible.
type transactionEnvelope struct {
	Network           string   `json:"network"`
	NodeAccountIDs    []string `json:"nodeAccountIds"`
	TransactionID     string   `json:"transactionId"`
	ValidStart        string   `json:"validStart"`
	ValidDuration     int64    `json:"validDurationSeconds"`
	MaxTransactionFee int64    `json:"maxTransactionFee"`
	Memo              string   `json:"memo"`
	Kind              string   `json:"kind"`
	Body              any      `json:"body"`
}

type tokenAssociateBody struct {
	AccountID string   `json:"accountId"`
	TokenIDs  []string `json:"tokenIds"`
}

type accountAmount struct {
	AccountID string `json:"accountId"`
	Amount    int64  `json:"amount"`
}

type tokenTransferList struct {
	TokenID   string          `json:"tokenId"`
	Transfers []accountAmount `json:"transfers"`
}

type tokenMintBody struct {
	TokenID string `json:"tokenId"`
	Amount  int64  `json:"amount"`
}

type scheduledBody struct {
	TokenMint      tokenMintBody       `json:"tokenMint"`
	TokenTransfers []tokenTransferList `json:"tokenTransfers"`
}

type scheduleCreateBody struct {
	PayerAccountID string        `json:"payerAccountId"`
	ScheduleMemo   string        `json:"scheduleMemo"`
	Scheduled      scheduledBody `json:"scheduledTransactionBody"`
}

type cryptoTransferBody struct {
	TokenTransfers []tokenTransferList `json:"tokenTransfers"`
}

type contractCallBody struct {
	ContractID         string `json:"contractId"`
	Gas                int64  `json:"gas"`
	FunctionParameters string `json:"functionParameters"`
}

type builtTransaction struct {
	id    string
	bytes []byte
	hash  string
}

type txBuilder struct {
	cfg PreparerConfig
}

func (b txBuilder) build(payer string, validStart time.Time, memo, kind string, body any) (*builtTransaction, error) {
	start := fmt.Sprintf("%d.%09d", validStart.Unix(), validStart.Nanosecond())
	env := transactionEnvelope{
		Network:           b.cfg.Network,
		NodeAccountIDs:    b.cfg.NodeAccountIDs,
		TransactionID:     payer + "@" + start,
		ValidStart:        start,
		ValidDuration:     int64(b.cfg.ValidDuration / time.Second),
		MaxTransactionFee: b.cfg.MaxTransactionFee,
		Memo:              memo,
		Kind:              kind,
		Body:              body,
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode %s transaction: %w", kind, err)
	}
	return &builtTransaction{id: env.TransactionID, bytes: raw, hash: keccakHex(raw)}, nil
}

func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

func keccakHex(data []byte) string {
	return hex.EncodeToString(keccak256(data))
}

// validEntityID reports whether id has the shard.realm.num form.
func validEntityID(id string) bool {
	return entityIDPattern.MatchString(id)
}

// longZeroAddress maps shard.realm.num onto the 20-byte EVM address space:
// 4 bytes shard, 8 bytes realm, 8 bytes num.
func longZeroAddress(id string) ([20]byte, error) {
	var addr [20]byte
	m := entityIDPattern.FindStringSubmatch(id)
	if m == nil {
		return addr, fmt.Errorf("entity id %q: expected shard.realm.num", id)
	}
	shard, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return addr, fmt.Errorf("entity id %q: shard: %w", id, err)
	}
	realm, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return addr, fmt.Errorf("entity id %q: realm: %w", id, err)
	}
	num, err := strconv.ParseUint(m[3], 10, 64)
	if err != nil {
		return addr, fmt.Errorf("entity id %q: num: %w", id, err)
	}
	binary.BigEndian.PutUint32(addr[0:4], uint32(shard))
	binary.BigEndian.PutUint64(addr[4:12], realm)
	binary.BigEndian.PutUint64(addr[12:20], num)
	return addr, nil
}

// swapCallData encodes swap(address token, uint256 amount) as EVM call data.
func swapCallData(tokenID string, amount int64) ([]byte, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("swap amount must be positive")
	}
	token, err := longZeroAddress(tokenID)
	if err != nil {
		return nil, err
	}
	data := make([]byte, 4+32+32)
	copy(data[0:4], keccak256([]byte(swapSignature))[:4])
	copy(data[4+12:36], token[:])
	binary.BigEndian.PutUint64(data[36+24:68], uint64(amount))
	return data, nil
}

// preparedTransactionID returns the transaction id baked into the unsigned
// bytes. A transaction confirmed out-of-band carries this same id.
func preparedTransactionID(unsigned []byte) (string, bool) {
	var env struct {
		TransactionID string `json:"transactionId"`
	}
	if err := json.Unmarshal(unsigned, &env); err != nil || env.TransactionID == "" {
		return "", false
	}
	return env.TransactionID, true
}
