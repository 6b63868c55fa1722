package commands

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	application "sufragio/contexts/electoral-core/ballot-service/application"
	"sufragio/contexts/electoral-core/ballot-service/domain/entities"
	domainerrors "sufragio/contexts/electoral-core/ballot-service/domain/errors"
	"sufragio/contexts/electoral-core/ballot-service/ports"
)

const tokenValidity = 24 * time.Hour

type UseCase struct {
	Voters    ports.VoterReader
	Juntas    ports.JuntaReader
	Elections ports.ElectionReader
	Ballots   ports.BallotRepository
	Tokens    ports.TokenRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

type CastVoteCommand struct {
	VoterCedula     string
	ListID          int64
	CandidateCedula string
	CandidateRole   string
}

// CastVote re-validates the full eligibility gate, confirms the election is
// inside its voting window, and records the anonymous ballot. The ballot
// insert and the HasVoted flip commit together; the flip is conditional on the
// flag still being false, so concurrent casts for the same voter produce
// exactly one ballot.
func (uc UseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (entities.AnonymousVote, error) {
	logger := application.ResolveLogger(uc.Logger)
	cedula := strings.TrimSpace(cmd.VoterCedula)
	candidateCedula := strings.TrimSpace(cmd.CandidateCedula)
	candidateRole := strings.TrimSpace(cmd.CandidateRole)
	if cedula == "" || candidateCedula == "" || candidateRole == "" || cmd.ListID <= 0 {
		return entities.AnonymousVote{}, domainerrors.ErrInvalidVoteInput
	}

	gate := application.Gate{Voters: uc.Voters, Juntas: uc.Juntas}
	result, err := gate.Evaluate(ctx, cedula)
	if err != nil {
		return entities.AnonymousVote{}, err
	}
	if !result.Decision.Allowed {
		return entities.AnonymousVote{}, denialError(result.Decision)
	}

	now := uc.now()
	window, found, err := uc.Elections.GetElectionWindow(ctx, result.Junta.ElectionID)
	if err != nil {
		return entities.AnonymousVote{}, err
	}
	if !found {
		return entities.AnonymousVote{}, domainerrors.ErrElectionNotFound
	}
	if now.Before(window.StartsAt) || !now.Before(window.EndsAt) {
		return entities.AnonymousVote{}, domainerrors.ErrElectionInactive
	}

	voteID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.AnonymousVote{}, err
	}
	ballot := entities.AnonymousVote{
		VoteID:          voteID,
		CastAt:          now,
		ElectionID:      result.Junta.ElectionID,
		PrecinctID:      result.Junta.PrecinctID,
		MesaNumber:      result.Junta.MesaNumber,
		ListID:          cmd.ListID,
		CandidateCedula: candidateCedula,
		CandidateRole:   candidateRole,
	}
	event, err := uc.ballotRecordedEnvelope(ctx, ballot)
	if err != nil {
		return entities.AnonymousVote{}, err
	}

	if err := uc.Ballots.RecordBallot(ctx, ballot, cedula, event); err != nil {
		// This is the one multi-step write of the whole platform; its
		// failures get a distinct event so they are not lost among
		// ordinary validation noise.
		logger.Error("ballot recording failed",
			"event", "ballot_record_failed",
			"module", "electoral-core/ballot-service",
			"layer", "application",
			"election_id", ballot.ElectionID,
			"mesa_number", ballot.MesaNumber,
			"error", err.Error(),
		)
		return entities.AnonymousVote{}, err
	}

	logger.Info("ballot recorded",
		"event", "ballot_recorded",
		"module", "electoral-core/ballot-service",
		"layer", "application",
		"vote_id", ballot.VoteID,
		"election_id", ballot.ElectionID,
		"precinct_id", ballot.PrecinctID,
		"mesa_number", ballot.MesaNumber,
	)
	return ballot, nil
}

// MarkVoted flips HasVoted for a voter when still unset. It is idempotent:
// marking an already marked voter succeeds without effect.
func (uc UseCase) MarkVoted(ctx context.Context, cedula string) (bool, error) {
	normalized := strings.TrimSpace(cedula)
	_, found, err := uc.Voters.GetVoterStatus(ctx, normalized)
	if err != nil {
		return false, err
	}
	if !found {
		return false, domainerrors.ErrVoterNotFound
	}
	flipped, err := uc.Ballots.MarkVoted(ctx, normalized)
	if err != nil {
		return false, err
	}
	if flipped {
		application.ResolveLogger(uc.Logger).InfoContext(ctx, "voter marked as voted",
			"event", "ballot_voter_marked",
			"module", "electoral-core/ballot-service",
			"layer", "application",
		)
	}
	return flipped, nil
}

type IssuedToken struct {
	Token entities.AccessToken
	// Code is the plain 6-digit code, returned exactly once.
	Code string
}

// IssueAccessToken creates a one-time 6-digit code for a voter who has not
// voted yet. Previously issued tokens for the voter are invalidated; the
// voter's password is never touched.
func (uc UseCase) IssueAccessToken(ctx context.Context, cedula string) (IssuedToken, error) {
	logger := application.ResolveLogger(uc.Logger)
	normalized := strings.TrimSpace(cedula)
	if normalized == "" {
		return IssuedToken{}, domainerrors.ErrInvalidTokenInput
	}

	voter, found, err := uc.Voters.GetVoterStatus(ctx, normalized)
	if err != nil {
		return IssuedToken{}, err
	}
	if !found {
		return IssuedToken{}, domainerrors.ErrVoterNotFound
	}
	if voter.HasVoted {
		return IssuedToken{}, domainerrors.ErrAlreadyVoted
	}

	code, err := newAccessCode()
	if err != nil {
		return IssuedToken{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return IssuedToken{}, err
	}
	tokenID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return IssuedToken{}, err
	}

	if err := uc.Tokens.InvalidateTokensForVoter(ctx, normalized); err != nil {
		return IssuedToken{}, err
	}
	now := uc.now()
	token, err := uc.Tokens.SaveToken(ctx, entities.AccessToken{
		TokenID:     tokenID,
		VoterCedula: normalized,
		CodeHash:    string(hash),
		Valid:       true,
		CreatedAt:   now,
		ExpiresAt:   now.Add(tokenValidity),
	})
	if err != nil {
		return IssuedToken{}, err
	}

	logger.Info("access token issued",
		"event", "ballot_token_issued",
		"module", "electoral-core/ballot-service",
		"layer", "application",
		"token_id", token.TokenID,
		"expires_at", token.ExpiresAt,
	)
	return IssuedToken{Token: token, Code: code}, nil
}

// RedeemAccessToken validates a code against the voter's live tokens and
// consumes the matching one.
func (uc UseCase) RedeemAccessToken(ctx context.Context, cedula string, code string) (entities.AccessToken, error) {
	normalized := strings.TrimSpace(cedula)
	if normalized == "" || strings.TrimSpace(code) == "" {
		return entities.AccessToken{}, domainerrors.ErrInvalidTokenInput
	}
	tokens, err := uc.Tokens.ListValidTokens(ctx, normalized, uc.now())
	if err != nil {
		return entities.AccessToken{}, err
	}
	for _, token := range tokens {
		if bcrypt.CompareHashAndPassword([]byte(token.CodeHash), []byte(strings.TrimSpace(code))) != nil {
			continue
		}
		if err := uc.Tokens.InvalidateToken(ctx, token.TokenID); err != nil {
			return entities.AccessToken{}, err
		}
		token.Valid = false
		application.ResolveLogger(uc.Logger).InfoContext(ctx, "access token redeemed",
			"event", "ballot_token_redeemed",
			"module", "electoral-core/ballot-service",
			"layer", "application",
			"token_id", token.TokenID,
		)
		return token, nil
	}
	return entities.AccessToken{}, domainerrors.ErrTokenNotFound
}

func denialError(decision entities.EligibilityDecision) error {
	switch decision.Reason {
	case entities.DenialVoterNotFound:
		return domainerrors.ErrVoterNotFound
	case entities.DenialAlreadyVoted:
		return domainerrors.ErrAlreadyVoted
	case entities.DenialNoJuntaAssigned:
		return domainerrors.ErrNoJuntaAssigned
	case entities.DenialJuntaNotOpen:
		return fmt.Errorf("%w: %s", domainerrors.ErrJuntaNotOpen, decision.Message)
	default:
		return domainerrors.ErrJuntaNotOpen
	}
}

func newAccessCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (uc UseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
