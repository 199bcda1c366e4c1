// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/oops"

	"github.com/karmaloom/karmaloom/internal/analytics"
	"github.com/karmaloom/karmaloom/internal/face"
	"github.com/karmaloom/karmaloom/internal/feud"
	"github.com/karmaloom/karmaloom/internal/graph"
	"github.com/karmaloom/karmaloom/internal/karma"
	"github.com/karmaloom/karmaloom/internal/ripple"
	"github.com/karmaloom/karmaloom/pkg/errutil"
)

// Config holds dependencies for the Engine.
type Config struct {
	Store  Store
	Roster Roster
	Logger *slog.Logger
}

// Engine coordinates one process's view of every novel's karma graph.
// Within a novel all writes are serialized: karma-event ingestion, ripple
// analysis, and ledger updates for one event complete before the next event
// for that novel is processed. Analytics take a read lock against the same
// state.
type Engine struct {
	store  Store
	roster Roster
	logger *slog.Logger

	mu     sync.Mutex
	novels map[ulid.ULID]*novelState
}

// novelState is the in-memory materialization of one novel's graph.
type novelState struct {
	mu sync.RWMutex
	// invalid marks state discarded after a failed write. Guarded by mu;
	// callers queued on the lock re-check it and re-fetch rather than
	// touch the half-applied mutations.
	invalid bool
	cfg     *NovelConfig
	graph   *graph.Graph
	ledger  *face.Ledger
	events  []*karma.Event
	feuds   []*feud.BloodFeud
	debts   []*feud.FaceDebt
	ripples []*ripple.Ripple
}

// New creates an Engine with the given configuration.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:  cfg.Store,
		roster: cfg.Roster,
		logger: logger,
		novels: make(map[ulid.ULID]*novelState),
	}
}

// rosterAdapter narrows the roster to one novel for the face ledger.
type rosterAdapter struct {
	novelID ulid.ULID
	roster  Roster
}

func (r rosterAdapter) ResolveName(id ulid.ULID) (string, bool) {
	return r.roster.ResolveName(r.novelID, id)
}

// persistErr wraps a store failure so errors.Is(err, ErrPersistence) holds.
func persistErr(err error, op string) error {
	return oops.Code("PERSISTENCE_FAILED").With("op", op).Wrap(fmt.Errorf("%w: %w", ErrPersistence, err))
}

// novel returns the cached state for a novel, materializing it from the
// persistence port on first touch.
func (e *Engine) novel(ctx context.Context, novelID ulid.ULID) (*novelState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if st, ok := e.novels[novelID]; ok {
		return st, nil
	}

	cfg, err := e.store.LoadConfig(ctx, novelID)
	if errors.Is(err, ErrNotFound) {
		cfg = DefaultNovelConfig(novelID)
	} else if err != nil {
		return nil, persistErr(err, "load config")
	}

	profiles, err := e.store.LoadProfiles(ctx, novelID)
	if err != nil {
		return nil, persistErr(err, "load profiles")
	}
	links, err := e.store.LoadLinks(ctx, novelID)
	if err != nil {
		return nil, persistErr(err, "load links")
	}
	events, err := e.store.LoadEvents(ctx, novelID)
	if err != nil {
		return nil, persistErr(err, "load events")
	}
	feuds, err := e.store.LoadFeuds(ctx, novelID)
	if err != nil {
		return nil, persistErr(err, "load feuds")
	}
	debts, err := e.store.LoadDebts(ctx, novelID)
	if err != nil {
		return nil, persistErr(err, "load debts")
	}
	ripples, err := e.store.LoadRipples(ctx, novelID)
	if err != nil {
		return nil, persistErr(err, "load ripples")
	}

	ledger := face.NewLedger(rosterAdapter{novelID: novelID, roster: e.roster})
	ledger.Restore(profiles)

	st := &novelState{
		cfg:     cfg,
		graph:   graph.Restore(links),
		ledger:  ledger,
		events:  events,
		feuds:   feuds,
		debts:   debts,
		ripples: ripples,
	}
	e.novels[novelID] = st
	return st, nil
}

// invalidate marks a novel's cached state stale and drops it from the
// cache so the next touch reloads from the persistence port. Used after a
// failed write sequence to discard half-applied in-memory mutations. The
// caller must hold st.mu for writing.
func (e *Engine) invalidate(novelID ulid.ULID, st *novelState) {
	st.invalid = true
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.novels[novelID] == st {
		delete(e.novels, novelID)
	}
}

// lockNovel returns the novel's state with the writer lock held. A caller
// queued behind a failed write would otherwise wake up holding half-applied
// state, so the stale flag is re-checked once the lock is acquired.
func (e *Engine) lockNovel(ctx context.Context, novelID ulid.ULID) (*novelState, error) {
	for {
		st, err := e.novel(ctx, novelID)
		if err != nil {
			return nil, err
		}
		st.mu.Lock()
		if !st.invalid {
			return st, nil
		}
		st.mu.Unlock()
	}
}

// rlockNovel is lockNovel for readers.
func (e *Engine) rlockNovel(ctx context.Context, novelID ulid.ULID) (*novelState, error) {
	for {
		st, err := e.novel(ctx, novelID)
		if err != nil {
			return nil, err
		}
		st.mu.RLock()
		if !st.invalid {
			return st, nil
		}
		st.mu.RUnlock()
	}
}

// resolveRef resolves a character reference through the roster.
func (e *Engine) resolveRef(novelID ulid.ULID, ref CharacterRef) (ulid.ULID, string, error) {
	if ref.ID != (ulid.ULID{}) {
		name := ref.Name
		if name == "" {
			if resolved, ok := e.roster.ResolveName(novelID, ref.ID); ok {
				name = resolved
			}
		}
		if name == "" {
			return ulid.ULID{}, "", oops.Code("CHARACTER_NOT_FOUND").
				With("character_id", ref.ID.String()).
				Wrap(face.ErrCharacterNotFound)
		}
		return ref.ID, name, nil
	}
	if ref.Name == "" {
		return ulid.ULID{}, "", oops.Code("CHARACTER_NOT_FOUND").
			Wrap(face.ErrCharacterNotFound)
	}
	id, ok := e.roster.ResolveID(novelID, ref.Name)
	if !ok {
		return ulid.ULID{}, "", oops.Code("CHARACTER_NOT_FOUND").
			With("character_name", ref.Name).
			Wrap(face.ErrCharacterNotFound)
	}
	return id, ref.Name, nil
}

// RecordRequest is the inbound shape of a new karmic fact, typically
// produced by the extraction collaborator.
type RecordRequest struct {
	Actor       CharacterRef
	Target      CharacterRef
	Action      karma.ActionType
	Severity    karma.Severity
	Chapter     int
	Description string
	Context     karma.Context
	WitnessIDs  []ulid.ULID
}

// RecordResult reports everything one recorded event set in motion.
type RecordResult struct {
	Event   *karma.Event
	Ripples []*ripple.Ripple
	Feud    *feud.BloodFeud
	Debt    *feud.FaceDebt
}

// RecordKarmaEvent is the sole write entry point for new karmic facts. It
// computes the event's weight, updates both participants' ledgers, adjusts
// graph sentiment, propagates ripples when the weight qualifies, and applies
// the feud/debt decisions. The whole sequence runs under the novel's writer
// lock. Ripple persistence is best-effort; every other persistence failure
// aborts the call and discards the novel's in-memory state so no
// half-applied mutation survives.
func (e *Engine) RecordKarmaEvent(ctx context.Context, novelID ulid.ULID, req RecordRequest) (*RecordResult, error) {
	timer := prometheus.NewTimer(RecordDuration)
	defer timer.ObserveDuration()

	st, err := e.lockNovel(ctx, novelID)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	if !st.cfg.Enabled {
		return nil, oops.Code("ENGINE_DISABLED").With("novel_id", novelID.String()).Wrap(ErrNovelDisabled)
	}

	actorID, actorName, err := e.resolveRef(novelID, req.Actor)
	if err != nil {
		return nil, err
	}
	targetID, targetName, err := e.resolveRef(novelID, req.Target)
	if err != nil {
		return nil, err
	}

	res, err := karma.ComputeWeight(req.Action, req.Severity, req.Context)
	if err != nil {
		return nil, oops.Code("EVENT_REJECTED").With("action", string(req.Action)).Wrap(err)
	}

	evt, err := karma.NewEvent(novelID, actorID, targetID, actorName, targetName, res, req.Chapter, req.Description)
	if err != nil {
		return nil, oops.Code("EVENT_REJECTED").Wrap(err)
	}
	evt.WitnessIDs = req.WitnessIDs

	changedLinks, result, err := e.apply(st, evt, res, req)
	if err != nil {
		return nil, err
	}

	if err := e.persistRecord(ctx, novelID, st, evt, changedLinks, result); err != nil {
		errutil.LogError(e.logger, "event persistence failed, dropping cached state", err)
		e.invalidate(novelID, st)
		return nil, err
	}

	EventsRecorded.WithLabelValues(string(res.Action), string(res.Polarity)).Inc()
	e.logger.Info("karma event recorded",
		"novel_id", novelID.String(),
		"event_id", evt.ID.String(),
		"action", string(res.Action),
		"final_weight", res.FinalWeight,
		"ripples", len(result.Ripples))
	return result, nil
}

// apply mutates the in-memory state for one event and reports what changed.
func (e *Engine) apply(st *novelState, evt *karma.Event, res karma.Result, req RecordRequest) (map[*graph.Link]bool, *RecordResult, error) {
	result := &RecordResult{Event: evt}
	changedLinks := make(map[*graph.Link]bool)
	sign := res.Polarity.Sign()

	// Either participant may be a first appearance the roster has never
	// seen; the event carries their names, so bootstrap the profiles from
	// it before the ledger updates need them.
	if _, err := st.ledger.Ensure(evt.ActorID, evt.ActorName); err != nil {
		return nil, nil, err
	}
	if _, err := st.ledger.Ensure(evt.TargetID, evt.TargetName); err != nil {
		return nil, nil, err
	}

	// Karma balances: the actor accrues the karmic cost, the target the
	// karmic credit.
	if _, err := st.ledger.UpdateKarmaBalance(evt.ActorID, res.FinalWeight*sign); err != nil {
		return nil, nil, err
	}
	if _, err := st.ledger.UpdateKarmaBalance(evt.TargetID, -res.FinalWeight*sign); err != nil {
		return nil, nil, err
	}

	// Face.
	fc, err := karma.ComputeFaceChange(res.FinalWeight, res.Polarity, res.Action)
	if err != nil {
		return nil, nil, err
	}
	mult := st.cfg.FaceMultiplier(res.Action)
	actorDelta := scale(fc.ActorDelta, mult)
	targetDelta := scale(fc.TargetDelta, mult)
	if actorDelta != 0 {
		if _, err := st.ledger.AddFace(evt.ActorID, actorDelta, fc.Category, evt.Chapter, evt.Description); err != nil {
			return nil, nil, err
		}
	}
	if targetDelta < 0 && st.cfg.IsProtected(evt.TargetID) {
		e.logger.Debug("face loss skipped for protected character",
			"character_id", evt.TargetID.String())
	} else if targetDelta != 0 {
		if _, err := st.ledger.AddFace(evt.TargetID, targetDelta, fc.Category, evt.Chapter, evt.Description); err != nil {
			return nil, nil, err
		}
	}

	// Sentiment on the target->actor relationship.
	sentDelta := karma.ComputeSentimentChange(res.FinalWeight, res.Polarity, req.Context.WasPublic)
	if st.cfg.IsProtected(evt.TargetID) && sentDelta < 0 {
		sentDelta = 0
	}
	if sentDelta != 0 {
		links, err := e.adjustSentiment(st, evt, res, sentDelta)
		if err != nil {
			return nil, nil, err
		}
		for _, l := range links {
			changedLinks[l] = true
		}
	}

	// Blood feud.
	if sugg := karma.ShouldTriggerBloodFeud(res); sugg.Trigger {
		if existing := findFeud(st.feuds, evt.ActorID, evt.TargetID); existing != nil {
			existing.Escalate(res.FinalWeight/4, evt.Chapter, evt.ID, sugg.Reason)
			result.Feud = existing
		} else {
			f := feud.NewBloodFeud(evt.NovelID,
				feud.Party{ID: ulid.Make(), Name: evt.TargetName, MemberIDs: []ulid.ULID{evt.TargetID}},
				feud.Party{ID: ulid.Make(), Name: evt.ActorName, MemberIDs: []ulid.ULID{evt.ActorID}},
				sugg.Reason, evt.ID, sugg.Intensity)
			st.feuds = append(st.feuds, f)
			result.Feud = f
			FeudsStarted.Inc()
		}
	}

	// Face debt (target owes actor).
	if sugg := karma.ShouldCreateDebt(res); sugg.Create {
		d := feud.NewFaceDebt(evt.NovelID, evt.TargetID, evt.ActorID, evt.TargetName, evt.ActorName,
			sugg.Type, sugg.Weight, evt.ID)
		st.debts = append(st.debts, d)
		result.Debt = d
		DebtsCreated.Inc()
	}

	// Ripples.
	if st.cfg.AutoRipple {
		rips := ripple.Analyze(evt, st.graph, st.cfg.rippleConfig())
		for _, r := range rips {
			links, err := e.applyRippleSentiment(st, evt, r)
			if err != nil {
				return nil, nil, err
			}
			for _, l := range links {
				changedLinks[l] = true
			}
		}
		st.ripples = append(st.ripples, rips...)
		result.Ripples = rips
		RipplesCreated.Add(float64(len(rips)))
	}

	st.events = append(st.events, evt)
	return changedLinks, result, nil
}

// adjustSentiment shifts how the target now sees the actor. Existing
// target->actor edges all absorb the delta; with no edge at all, the event
// itself establishes one.
func (e *Engine) adjustSentiment(st *novelState, evt *karma.Event, res karma.Result, delta int) ([]*graph.Link, error) {
	var changed []*graph.Link
	for _, l := range st.graph.Neighbors(evt.TargetID, graph.NeighborFilter{IncludeHidden: true}) {
		if l.SourceID == evt.TargetID && l.TargetID == evt.ActorID {
			l.AdjustSentiment(delta)
			l.MutualKarmaBalance += delta
			if res.Polarity == karma.PolarityNegative {
				l.UnsettledKarma += res.FinalWeight
			}
			l.LastInteractionChapter = evt.Chapter
			changed = append(changed, l)
		}
	}
	if len(changed) > 0 {
		return changed, nil
	}

	linkType := graph.LinkBenefactor
	if res.Polarity == karma.PolarityNegative {
		linkType = graph.LinkEnemy
	}
	l, err := st.graph.Upsert(evt.TargetID, evt.ActorID, linkType, evt.Chapter, graph.UpsertOptions{
		Sentiment: delta,
	})
	if err != nil {
		return nil, oops.Code("LINK_UPSERT_FAILED").Wrap(err)
	}
	l.MutualKarmaBalance = delta
	if res.Polarity == karma.PolarityNegative {
		l.UnsettledKarma = res.FinalWeight
	}
	return []*graph.Link{l}, nil
}

// applyRippleSentiment lets a ripple shift how its carrier sees the actor.
// Only existing edges absorb the shift, except that a ripple turning
// someone into a threat establishes an enemy edge.
func (e *Engine) applyRippleSentiment(st *novelState, evt *karma.Event, r *ripple.Ripple) ([]*graph.Link, error) {
	if st.cfg.IsProtected(r.CharacterID) && r.SentimentChange < 0 {
		return nil, nil
	}
	var changed []*graph.Link
	for _, l := range st.graph.Neighbors(r.CharacterID, graph.NeighborFilter{IncludeHidden: true}) {
		if l.SourceID == r.CharacterID && l.TargetID == evt.ActorID {
			l.AdjustSentiment(r.SentimentChange)
			changed = append(changed, l)
		}
	}
	if len(changed) > 0 || !r.BecomesThreat {
		return changed, nil
	}
	l, err := st.graph.Upsert(r.CharacterID, evt.ActorID, graph.LinkEnemy, evt.Chapter, graph.UpsertOptions{
		Sentiment: r.SentimentChange,
	})
	if err != nil {
		return nil, oops.Code("LINK_UPSERT_FAILED").Wrap(err)
	}
	return []*graph.Link{l}, nil
}

// persistRecord writes one event's mutations through the persistence port.
// Ripple writes are best-effort: a failed ripple write is logged and the
// event still counts as recorded.
func (e *Engine) persistRecord(ctx context.Context, novelID ulid.ULID, st *novelState, evt *karma.Event, changedLinks map[*graph.Link]bool, result *RecordResult) error {
	if err := e.store.SaveEvent(ctx, novelID, evt); err != nil {
		return persistErr(err, "save event")
	}
	for _, id := range []ulid.ULID{evt.ActorID, evt.TargetID} {
		if p := st.ledger.Profile(id); p != nil {
			if err := e.store.SaveProfile(ctx, novelID, p); err != nil {
				return persistErr(err, "save profile")
			}
		}
	}
	for l := range changedLinks {
		if err := e.store.UpsertLink(ctx, novelID, l); err != nil {
			return persistErr(err, "upsert link")
		}
	}
	if result.Feud != nil {
		if err := e.store.SaveFeud(ctx, novelID, result.Feud); err != nil {
			return persistErr(err, "save feud")
		}
	}
	if result.Debt != nil {
		if err := e.store.SaveDebt(ctx, novelID, result.Debt); err != nil {
			return persistErr(err, "save debt")
		}
	}
	for _, r := range result.Ripples {
		if err := e.store.SaveRipple(ctx, novelID, r); err != nil {
			e.logger.Warn("ripple persistence failed, continuing",
				"ripple_id", r.ID.String(),
				"event_id", evt.ID.String(),
				"error", err)
		}
	}
	return nil
}

func scale(v int, mult float64) int {
	return int(math.Round(float64(v) * mult))
}

// findFeud returns the unresolved feud with the two characters on opposing
// sides, if any.
func findFeud(feuds []*feud.BloodFeud, a, b ulid.ULID) *feud.BloodFeud {
	for _, f := range feuds {
		if f.Resolved {
			continue
		}
		opposing, ok := f.OpposingParty(a)
		if ok && opposing.Includes(b) {
			return f
		}
	}
	return nil
}

// ApplyRippleDecay ages every unmanifested ripple by chaptersPassed and
// deletes the ones that faded past the floor. Runs under the novel's
// writer lock; per-ripple persistence failures are logged and skipped.
func (e *Engine) ApplyRippleDecay(ctx context.Context, novelID ulid.ULID, chaptersPassed int) (int, error) {
	st, err := e.lockNovel(ctx, novelID)
	if err != nil {
		return 0, err
	}
	defer st.mu.Unlock()

	alive, expired := ripple.ApplyDecay(st.ripples, st.cfg.KarmaDecayPerChapter, chaptersPassed)
	st.ripples = alive

	for _, r := range expired {
		if err := e.store.DeleteRipple(ctx, novelID, r.ID); err != nil {
			e.logger.Warn("ripple delete failed", "ripple_id", r.ID.String(), "error", err)
		}
	}
	for _, r := range alive {
		if r.Manifested {
			continue
		}
		if err := e.store.SaveRipple(ctx, novelID, r); err != nil {
			e.logger.Warn("ripple decay persistence failed", "ripple_id", r.ID.String(), "error", err)
		}
	}

	RipplesExpired.Add(float64(len(expired)))
	if len(expired) > 0 {
		e.logger.Info("ripples faded", "novel_id", novelID.String(), "expired", len(expired))
	}
	return len(expired), nil
}

// SettleEvent marks a karma event settled. Double settlement is an
// idempotent no-op logged as a warning.
func (e *Engine) SettleEvent(ctx context.Context, novelID, eventID ulid.ULID, settlement karma.Settlement, chapter int) error {
	st, err := e.lockNovel(ctx, novelID)
	if err != nil {
		return err
	}
	defer st.mu.Unlock()

	var evt *karma.Event
	for _, candidate := range st.events {
		if candidate.ID == eventID {
			evt = candidate
			break
		}
	}
	if evt == nil {
		return oops.Code("EVENT_NOT_FOUND").With("event_id", eventID.String()).Wrap(ErrNotFound)
	}
	changed, err := evt.Settle(settlement, chapter)
	if err != nil {
		return err
	}
	if !changed {
		e.logger.Warn("event already settled", "event_id", eventID.String())
		return nil
	}
	if err := e.store.SaveEvent(ctx, novelID, evt); err != nil {
		e.invalidate(novelID, st)
		return persistErr(err, "save event")
	}
	return nil
}

// ResolveFeud terminates a blood feud. Double resolution is an idempotent
// no-op logged as a warning.
func (e *Engine) ResolveFeud(ctx context.Context, novelID, feudID ulid.ULID, resolution feud.ResolutionType, chapter int) error {
	st, err := e.lockNovel(ctx, novelID)
	if err != nil {
		return err
	}
	defer st.mu.Unlock()

	for _, f := range st.feuds {
		if f.ID != feudID {
			continue
		}
		if !f.Resolve(resolution, chapter) {
			e.logger.Warn("feud already resolved", "feud_id", feudID.String())
			return nil
		}
		if err := e.store.SaveFeud(ctx, novelID, f); err != nil {
			e.invalidate(novelID, st)
			return persistErr(err, "save feud")
		}
		return nil
	}
	return oops.Code("FEUD_NOT_FOUND").With("feud_id", feudID.String()).Wrap(ErrNotFound)
}

// RepayDebt discharges a face debt. Double repayment is an idempotent
// no-op logged as a warning.
func (e *Engine) RepayDebt(ctx context.Context, novelID, debtID ulid.ULID, chapter int, eventID ulid.ULID, description string) error {
	st, err := e.lockNovel(ctx, novelID)
	if err != nil {
		return err
	}
	defer st.mu.Unlock()

	for _, d := range st.debts {
		if d.ID != debtID {
			continue
		}
		if !d.Repay(chapter, eventID, description) {
			e.logger.Warn("debt already repaid", "debt_id", debtID.String())
			return nil
		}
		if err := e.store.SaveDebt(ctx, novelID, d); err != nil {
			e.invalidate(novelID, st)
			return persistErr(err, "save debt")
		}
		return nil
	}
	return oops.Code("DEBT_NOT_FOUND").With("debt_id", debtID.String()).Wrap(ErrNotFound)
}

// UpdateConfig replaces a novel's engine tuning.
func (e *Engine) UpdateConfig(ctx context.Context, cfg *NovelConfig) error {
	st, err := e.lockNovel(ctx, cfg.NovelID)
	if err != nil {
		return err
	}
	defer st.mu.Unlock()

	if err := e.store.SaveConfig(ctx, cfg); err != nil {
		return persistErr(err, "save config")
	}
	st.cfg = cfg
	return nil
}

// MostInfluential ranks the novel's characters by influence score.
func (e *Engine) MostInfluential(ctx context.Context, novelID ulid.ULID, n int) ([]analytics.InfluenceScore, error) {
	st, err := e.rlockNovel(ctx, novelID)
	if err != nil {
		return nil, err
	}
	defer st.mu.RUnlock()
	return analytics.MostInfluential(st.graph, st.ledger, n), nil
}

// ShortestPath finds the shortest relationship chain between two
// characters within maxDepth hops.
func (e *Engine) ShortestPath(ctx context.Context, novelID, a, b ulid.ULID, maxDepth int) ([]analytics.PathStep, bool, error) {
	st, err := e.rlockNovel(ctx, novelID)
	if err != nil {
		return nil, false, err
	}
	defer st.mu.RUnlock()
	path, ok := analytics.ShortestPath(st.graph, a, b, maxDepth)
	return path, ok, nil
}

// DetectClusters finds the novel's amicable social clusters.
func (e *Engine) DetectClusters(ctx context.Context, novelID ulid.ULID) ([]analytics.Cluster, error) {
	st, err := e.rlockNovel(ctx, novelID)
	if err != nil {
		return nil, err
	}
	defer st.mu.RUnlock()
	return analytics.DetectClusters(st.graph), nil
}

// FindEnemies classifies everyone hostile to the character, with reasons.
func (e *Engine) FindEnemies(ctx context.Context, novelID, characterID ulid.ULID) ([]analytics.Standing, error) {
	st, err := e.rlockNovel(ctx, novelID)
	if err != nil {
		return nil, err
	}
	defer st.mu.RUnlock()
	return analytics.FindEnemies(st.graph, characterID, st.feuds, st.events), nil
}

// FindAllies classifies everyone favorable to the character, with reasons.
func (e *Engine) FindAllies(ctx context.Context, novelID, characterID ulid.ULID) ([]analytics.Standing, error) {
	st, err := e.rlockNovel(ctx, novelID)
	if err != nil {
		return nil, err
	}
	defer st.mu.RUnlock()
	return analytics.FindAllies(st.graph, characterID, st.debts), nil
}
