package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"
	"dlt-orchestrator/pkg/apperror"
	"dlt-orchestrator/pkg/logger"

	"github.com/rs/zerolog"
)

const (
	kindTokenAssociate = "tokenAssociate"
	kindScheduleCreate = "scheduleCreate"
	kindCryptoTransfer = "cryptoTransfer"
	kindContractCall   = "contractCall"
)

// PreparerServiceImpl implements ports.PreparerService.
// It reads chain state but never writes anywhere.
type PreparerServiceImpl struct {
	chain   ports.ChainReader
	builder txBuilder
	now     func() time.Time
	log     zerolog.Logger
}

// NewPreparerService creates a new PreparerServiceImpl.
func NewPreparerService(chain ports.ChainReader, cfg PreparerConfig, log zerolog.Logger) *PreparerServiceImpl {
	return &PreparerServiceImpl{
		chain:   chain,
		builder: txBuilder{cfg: cfg},
		now:     func() time.Time { return time.Now().UTC() },
		log:     logger.Component(log, "preparer"),
	}
}

// Prepare builds the unsigned payload for intent. A payload with
// Required=false means the chain already satisfies the intent.
func (s *PreparerServiceImpl) Prepare(ctx context.Context, intent domain.IntentType, p domain.PrepareParams) (*domain.UnsignedPayload, error) {
	var (
		payload *domain.UnsignedPayload
		err     error
	)
	switch intent {
	case domain.IntentAssociateToken, domain.IntentShopAcceptToken:
		payload, err = s.prepareAssociate(ctx, intent, p)
	case domain.IntentScheduleMint:
		payload, err = s.prepareScheduleMint(ctx, p)
	case domain.IntentPaymentTransfer:
		payload, err = s.preparePayment(ctx, p)
	case domain.IntentContractSwap:
		payload, err = s.prepareSwap(ctx, p)
	default:
		return nil, apperror.Preparation(apperror.PrepInvalidParams, fmt.Sprintf("unknown intent %q", intent))
	}
	if err != nil {
		s.log.Debug().Err(err).Str("intent", string(intent)).Str("account_id", p.AccountID).Msg("preparation refused")
		return nil, err
	}
	return payload, nil
}

func (s *PreparerServiceImpl) prepareAssociate(ctx context.Context, intent domain.IntentType, p domain.PrepareParams) (*domain.UnsignedPayload, error) {
	if !validEntityID(p.AccountID) || !validEntityID(p.TokenID) {
		return nil, apperror.Preparation(apperror.PrepInvalidParams, "account and token must be shard.realm.num ids")
	}
	if err := s.requireToken(ctx, p.TokenID); err != nil {
		return nil, err
	}
	associated, err := s.chain.IsAssociated(ctx, p.AccountID, p.TokenID)
	if err != nil {
		return nil, apperror.ErrChainUnavailable(err)
	}
	if associated {
		return &domain.UnsignedPayload{Required: false, IntentType: intent}, nil
	}

	var details domain.OperationDetails = domain.TokenAssociateDetails{AccountID: p.AccountID, TokenID: p.TokenID}
	if intent == domain.IntentShopAcceptToken {
		details = domain.ShopAcceptTokenDetails{ShopAccountID: p.AccountID, TokenID: p.TokenID}
	}
	body := tokenAssociateBody{AccountID: p.AccountID, TokenIDs: []string{p.TokenID}}
	return s.payload(intent, p.AccountID, "", kindTokenAssociate, body, details)
}

func (s *PreparerServiceImpl) prepareScheduleMint(ctx context.Context, p domain.PrepareParams) (*domain.UnsignedPayload, error) {
	if !validEntityID(p.AccountID) || !validEntityID(p.TreasuryAccountID) || !validEntityID(p.TokenID) {
		return nil, apperror.Preparation(apperror.PrepInvalidParams, "account, treasury and token must be shard.realm.num ids")
	}
	if p.Amount <= 0 {
		return nil, apperror.Preparation(apperror.PrepInvalidParams, "amount must be positive")
	}
	if err := s.requireToken(ctx, p.TokenID); err != nil {
		return nil, err
	}
	memo, ok := normalizeMemo(p.Memo)
	if !ok {
		return nil, apperror.Preparation(apperror.PrepInvalidParams, "memo is too long")
	}

	body := scheduleCreateBody{
		PayerAccountID: p.TreasuryAccountID,
		ScheduleMemo:   memo,
		Scheduled: scheduledBody{
			TokenMint: tokenMintBody{TokenID: p.TokenID, Amount: p.Amount},
			TokenTransfers: []tokenTransferList{{
				TokenID: p.TokenID,
				Transfers: []accountAmount{
					{AccountID: p.TreasuryAccountID, Amount: -p.Amount},
					{AccountID: p.AccountID, Amount: p.Amount},
				},
			}},
		},
	}
	details := domain.ScheduleCreateDetails{
		AccountID:         p.AccountID,
		TreasuryAccountID: p.TreasuryAccountID,
		TokenID:           p.TokenID,
		Amount:            p.Amount,
		Memo:              memo,
	}
	return s.payload(domain.IntentScheduleMint, p.AccountID, memo, kindScheduleCreate, body, details)
}

func (s *PreparerServiceImpl) preparePayment(ctx context.Context, p domain.PrepareParams) (*domain.UnsignedPayload, error) {
	if !validEntityID(p.AccountID) || !validEntityID(p.CounterpartyID) || !validEntityID(p.TokenID) {
		return nil, apperror.Preparation(apperror.PrepInvalidParams, "payer, shop and token must be shard.realm.num ids")
	}
	if p.Amount <= 0 {
		return nil, apperror.Preparation(apperror.PrepInvalidParams, "amount must be positive")
	}
	if p.AccountID == p.CounterpartyID {
		return nil, apperror.Preparation(apperror.PrepInvalidParams, "payer and shop must differ")
	}
	memo, ok := normalizeMemo(p.Memo)
	if !ok {
		return nil, apperror.Preparation(apperror.PrepInvalidParams, "memo is too long")
	}
	if err := s.requireToken(ctx, p.TokenID); err != nil {
		return nil, err
	}
	shopAssociated, err := s.chain.IsAssociated(ctx, p.CounterpartyID, p.TokenID)
	if err != nil {
		return nil, apperror.ErrChainUnavailable(err)
	}
	if !shopAssociated {
		return nil, apperror.Preparation(apperror.PrepShopNotAssociated, "shop has not accepted this token yet")
	}
	if err := s.requireBalance(ctx, p.AccountID, p.TokenID, p.Amount); err != nil {
		return nil, err
	}

	body := cryptoTransferBody{TokenTransfers: []tokenTransferList{{
		TokenID: p.TokenID,
		Transfers: []accountAmount{
			{AccountID: p.AccountID, Amount: -p.Amount},
			{AccountID: p.CounterpartyID, Amount: p.Amount},
		},
	}}}
	details := domain.PaymentTransferDetails{
		PayerAccountID: p.AccountID,
		ShopAccountID:  p.CounterpartyID,
		TokenID:        p.TokenID,
		Amount:         p.Amount,
		Memo:           memo,
	}
	return s.payload(domain.IntentPaymentTransfer, p.AccountID, memo, kindCryptoTransfer, body, details)
}

func (s *PreparerServiceImpl) prepareSwap(ctx context.Context, p domain.PrepareParams) (*domain.UnsignedPayload, error) {
	if p.ContractID == "" {
		return nil, apperror.Preparation(apperror.PrepMissingContract, "no swap contract is configured for this enterprise")
	}
	if !validEntityID(p.AccountID) || !validEntityID(p.TokenID) || !validEntityID(p.ContractID) {
		return nil, apperror.Preparation(apperror.PrepInvalidParams, "account, token and contract must be shard.realm.num ids")
	}
	if p.Amount <= 0 {
		return nil, apperror.Preparation(apperror.PrepInvalidParams, "amount must be positive")
	}
	exists, err := s.chain.ContractExists(ctx, p.ContractID)
	if err != nil {
		return nil, apperror.ErrChainUnavailable(err)
	}
	if !exists {
		return nil, apperror.Preparation(apperror.PrepMissingContract, "swap contract does not exist on this network")
	}
	if err := s.requireToken(ctx, p.TokenID); err != nil {
		return nil, err
	}
	if err := s.requireBalance(ctx, p.AccountID, p.TokenID, p.Amount); err != nil {
		return nil, err
	}

	callData, err := swapCallData(p.TokenID, p.Amount)
	if err != nil {
		return nil, apperror.Preparation(apperror.PrepInvalidParams, err.Error())
	}
	encoded := hex.EncodeToString(callData)
	body := contractCallBody{
		ContractID:         p.ContractID,
		Gas:                s.builder.cfg.SwapGas,
		FunctionParameters: encoded,
	}
	details := domain.SwapDetails{
		AccountID:  p.AccountID,
		TokenID:    p.TokenID,
		ContractID: p.ContractID,
		Amount:     p.Amount,
		CallData:   encoded,
		Gas:        s.builder.cfg.SwapGas,
	}
	return s.payload(domain.IntentContractSwap, p.AccountID, "", kindContractCall, body, details)
}

func (s *PreparerServiceImpl) payload(intent domain.IntentType, payer, memo, kind string, body any, details domain.OperationDetails) (*domain.UnsignedPayload, error) {
	validStart := s.now()
	built, err := s.builder.build(payer, validStart, memo, kind, body)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return &domain.UnsignedPayload{
		Required:         true,
		IntentType:       intent,
		SignerAccountID:  payer,
		TransactionID:    built.id,
		TransactionBytes: built.bytes,
		BodyHash:         built.hash,
		ValidStart:       validStart,
		Details:          details,
	}, nil
}

func (s *PreparerServiceImpl) requireToken(ctx context.Context, tokenID string) error {
	ok, err := s.chain.TokenExists(ctx, tokenID)
	if err != nil {
		return apperror.ErrChainUnavailable(err)
	}
	if !ok {
		return apperror.Preparation(apperror.PrepUnknownToken, fmt.Sprintf("token %s does not exist", tokenID))
	}
	return nil
}

func (s *PreparerServiceImpl) requireBalance(ctx context.Context, accountID, tokenID string, amount int64) error {
	balance, err := s.chain.TokenBalance(ctx, accountID, tokenID)
	if err != nil {
		return apperror.ErrChainUnavailable(err)
	}
	if balance < amount {
		return apperror.Preparation(apperror.PrepInsufficientBalance, "token balance is lower than the requested amount")
	}
	return nil
}
