package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ecard-vn/ecard/internal/domains/dtos"
	"github.com/ecard-vn/ecard/internal/domains/entities"
	"github.com/ecard-vn/ecard/internal/storage"
	"github.com/ecard-vn/ecard/pkg/logging"
	"github.com/ecard-vn/ecard/pkg/utils"
	"go.uber.org/zap"
)

// MatchEngine orchestrates pairing and round resolution. It owns the
// waiting pool, the match registry and the user roster, and snapshots
// them through the store after every mutation. The engine is the
// authority on state; a failed snapshot write is logged, never rolled
// back.
type MatchEngine struct {
	pool     *WaitingPool
	registry *MatchRegistry
	store    storage.Store

	waitingTTL time.Duration

	usersMu sync.Mutex
	users   map[string]entities.User

	// joinMu serializes pairing so two joins cannot both consume the
	// same waiting entry.
	joinMu sync.Mutex

	// matchLocks holds one mutex per match id for play/update
	// read-modify-write. Plays on different matches do not block each
	// other.
	matchLocks sync.Map

	now func() time.Time
}

func NewMatchEngine(store storage.Store, waitingTTL time.Duration) *MatchEngine {
	return &MatchEngine{
		pool:       NewWaitingPool(),
		registry:   NewMatchRegistry(),
		store:      store,
		waitingTTL: waitingTTL,
		users:      map[string]entities.User{},
		now:        time.Now,
	}
}

// Load restores the last written snapshot, used once at startup.
func (e *MatchEngine) Load(ctx context.Context) error {
	snapshot, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	e.pool.Restore(snapshot.Waiting)
	e.registry.Restore(snapshot.Matches)
	e.usersMu.Lock()
	e.users = make(map[string]entities.User, len(snapshot.Users))
	for _, user := range snapshot.Users {
		e.users[user.Id] = user
	}
	e.usersMu.Unlock()
	logging.Info("snapshot loaded",
		zap.Int("users", len(snapshot.Users)),
		zap.Int("matches", len(snapshot.Matches)),
		zap.Int("waiting", len(snapshot.Waiting)),
	)
	return nil
}

// JoinMatch pairs the requester with the oldest valid waiting player, or
// enqueues them when nobody is waiting. Strict FIFO: first to wait is
// matched first.
func (e *MatchEngine) JoinMatch(ctx context.Context, userId, username string) (dtos.JoinMatchResponse, error) {
	if userId == "" || username == "" {
		return dtos.JoinMatchResponse{}, fmt.Errorf("%w: user_id and username", ErrValidation)
	}

	e.joinMu.Lock()
	defer e.joinMu.Unlock()

	now := e.now()
	e.recordUser(ctx, userId, username, now)

	opponent, found := e.pool.DequeueOldestValid(now, e.waitingTTL)
	if !found {
		e.pool.Enqueue(userId, username, now)
		e.persistWaiting(ctx)
		logging.Info("player queued", zap.String("user_id", userId))
		return dtos.JoinMatchResponse{
			Status:  dtos.JoinStatusWaiting,
			Message: "Waiting for opponent...",
		}, nil
	}

	match := entities.Match{
		Id:              utils.GenerateUUID(),
		Player1Id:       opponent.UserId,
		Player2Id:       userId,
		Player1Username: opponent.Username,
		Player2Username: username,
		Status:          entities.MatchStatusPlaying,
		GameState:       entities.NewGameState(),
		CreatedAt:       now,
	}
	if err := e.registry.Create(match); err != nil {
		// Re-queue the opponent so the entry is not lost.
		e.pool.Enqueue(opponent.UserId, opponent.Username, opponent.Timestamp)
		return dtos.JoinMatchResponse{}, err
	}
	e.persistMatches(ctx)
	e.persistWaiting(ctx)
	logging.Info("match created",
		zap.String("match_id", match.Id),
		zap.String("player1_id", match.Player1Id),
		zap.String("player2_id", match.Player2Id),
	)
	return dtos.JoinMatchResponse{
		Status:  dtos.JoinStatusJoined,
		MatchId: match.Id,
		Player1: match.Player1Username,
		Player2: match.Player2Username,
	}, nil
}

// CheckMatch reports the first playing match the user is part of, letting
// a reconnecting client rediscover its live match.
func (e *MatchEngine) CheckMatch(_ context.Context, userId string) (dtos.CheckMatchResponse, error) {
	if userId == "" {
		return dtos.CheckMatchResponse{}, fmt.Errorf("%w: user_id", ErrValidation)
	}
	match, found := e.registry.FindByUser(userId)
	if !found {
		return dtos.CheckMatchResponse{Found: false}, nil
	}
	resp := dtos.MatchResponseFromEntity(match)
	return dtos.CheckMatchResponse{Found: true, Match: &resp}, nil
}

// PlayCard applies one card play and, when both sides have a card on the
// table, resolves the round against each side's latest played card.
func (e *MatchEngine) PlayCard(ctx context.Context, matchId, userId string, card entities.Card) (dtos.PlayCardResponse, error) {
	if matchId == "" || userId == "" || card == "" {
		return dtos.PlayCardResponse{}, fmt.Errorf("%w: match_id, user_id and card", ErrValidation)
	}

	lock := e.matchLock(matchId)
	lock.Lock()
	defer lock.Unlock()

	match, found := e.registry.FindById(matchId)
	if !found {
		return dtos.PlayCardResponse{}, ErrMatchNotFound
	}
	if match.Status != entities.MatchStatusPlaying {
		return dtos.PlayCardResponse{}, ErrMatchFinished
	}

	// Any id other than player1's acts as player2.
	slot := &match.GameState.Player2
	if match.Player1Id == userId {
		slot = &match.GameState.Player1
	}

	idx := -1
	for i, held := range slot.Hand {
		if held == card {
			idx = i
			break
		}
	}
	if idx < 0 {
		return dtos.PlayCardResponse{}, ErrCardNotInHand
	}
	slot.Hand = append(slot.Hand[:idx], slot.Hand[idx+1:]...)
	slot.Played = append(slot.Played, card)

	// The round resolves whenever both sides have any card on the table,
	// comparing each side's latest play.
	state := &match.GameState
	if len(state.Player1.Played) > 0 && len(state.Player2.Played) > 0 {
		card1 := state.Player1.Played[len(state.Player1.Played)-1]
		card2 := state.Player2.Played[len(state.Player2.Played)-1]
		winner := ResolveCards(card1, card2)
		switch winner {
		case WinnerPlayer1:
			state.Player1.Score++
		case WinnerPlayer2:
			state.Player2.Score++
		}
		state.History = append(state.History, entities.RoundRecord{
			Turn:        state.CurrentTurn,
			Player1Card: card1,
			Player2Card: card2,
			Winner:      winner,
		})
		state.CurrentTurn++
		if state.CurrentTurn > state.MaxTurns {
			match.Status = entities.MatchStatusFinished
		}
		logging.Info("round resolved",
			zap.String("match_id", match.Id),
			zap.Int("turn", state.CurrentTurn-1),
			zap.String("winner", winner),
		)
	}

	if err := e.registry.Update(match); err != nil {
		return dtos.PlayCardResponse{}, err
	}
	e.persistMatches(ctx)
	return dtos.PlayCardResponse{
		Success:     true,
		GameState:   match.GameState,
		MatchStatus: match.Status,
	}, nil
}

// GetGameState returns the full match record.
func (e *MatchEngine) GetGameState(_ context.Context, matchId string) (dtos.MatchResponse, error) {
	if matchId == "" {
		return dtos.MatchResponse{}, fmt.Errorf("%w: match_id", ErrValidation)
	}
	match, found := e.registry.FindById(matchId)
	if !found {
		return dtos.MatchResponse{}, ErrMatchNotFound
	}
	return dtos.MatchResponseFromEntity(match), nil
}

// LeaveMatch hard-deletes the match and drops any waiting entry for the
// user.
func (e *MatchEngine) LeaveMatch(ctx context.Context, matchId, userId string) (dtos.LeaveMatchResponse, error) {
	if matchId == "" || userId == "" {
		return dtos.LeaveMatchResponse{}, fmt.Errorf("%w: match_id and user_id", ErrValidation)
	}
	e.registry.Remove(matchId)
	e.matchLocks.Delete(matchId)
	e.pool.RemoveByUser(userId)
	e.persistMatches(ctx)
	e.persistWaiting(ctx)
	logging.Info("match left",
		zap.String("match_id", matchId),
		zap.String("user_id", userId),
	)
	return dtos.LeaveMatchResponse{Success: true}, nil
}

// Cleanup purges expired waiting entries and reports how many remain.
func (e *MatchEngine) Cleanup(ctx context.Context) dtos.CleanupResponse {
	purged := e.pool.PurgeExpired(e.now(), e.waitingTTL)
	if purged > 0 {
		e.persistWaiting(ctx)
		logging.Info("waiting pool purged", zap.Int("purged", purged))
	}
	return dtos.CleanupResponse{Cleaned: e.pool.Len()}
}

func (e *MatchEngine) matchLock(matchId string) *sync.Mutex {
	lock, _ := e.matchLocks.LoadOrStore(matchId, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (e *MatchEngine) recordUser(ctx context.Context, userId, username string, now time.Time) {
	e.usersMu.Lock()
	e.users[userId] = entities.User{Id: userId, Username: username, LastSeen: now}
	users := make([]entities.User, 0, len(e.users))
	for _, user := range e.users {
		users = append(users, user)
	}
	e.usersMu.Unlock()
	if err := e.store.SaveUsers(ctx, users); err != nil {
		logging.Error("failed to persist users", zap.Error(err))
	}
}

func (e *MatchEngine) persistMatches(ctx context.Context) {
	if err := e.store.SaveMatches(ctx, e.registry.Matches()); err != nil {
		logging.Error("failed to persist matches", zap.Error(err))
	}
}

func (e *MatchEngine) persistWaiting(ctx context.Context) {
	if err := e.store.SaveWaiting(ctx, e.pool.Entries()); err != nil {
		logging.Error("failed to persist waiting pool", zap.Error(err))
	}
}
