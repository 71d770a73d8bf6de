// Package actions maps user action identifiers to their handlers: clipboard
// copies and browser hand-offs.
package actions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/verte-zerg/memewire/internal/announce"
	"github.com/verte-zerg/memewire/internal/model"
)

// ID identifies an action.
type ID string

const (
	CopyMeme     ID = "copy-meme"
	CopyCaption  ID = "copy-caption"
	CopyLink     ID = "copy-link"
	CopyContract ID = "copy-contract"
	Share        ID = "share"
	Buy          ID = "buy"
)

var (
	// ErrUnknownAction is returned by Dispatch for an unregistered identifier.
	ErrUnknownAction = errors.New("unknown action")
	// ErrNoMeme is returned by actions that need a generated meme first.
	ErrNoMeme = errors.New("no meme generated yet")
	// ErrNoContract is returned by copy-contract when no address is configured.
	ErrNoContract = errors.New("no contract address configured")
)

const (
	TokenSymbol = "NFT"
	TokenName   = "Trump Captures Maduro"
	signature   = " - Nicolás Maduro #NFT #NIGHFLEECETECH #NFTSOL"
	// captionSource is used when the record carries no source.
	captionSource = "Group chat"
)

// Links are the external URLs the actions point at, plus the token's
// contract address.
type Links struct {
	Site     string
	Token    string
	Share    string
	Contract string
}

// DefaultLinks returns the live site's URLs.
func DefaultLinks() Links {
	return Links{
		Site:  "https://nftsol.xyz",
		Token: "https://pump.fun/",
		Share: "https://twitter.com/intent/tweet",
	}
}

// Outcome describes what an action did.
type Outcome struct {
	Action   ID
	Message  string
	Priority announce.Priority
	Method   Method
	URL      string
	// Fallback holds text that could not be copied anywhere; the caller must
	// show it to the user. Label names what it is.
	Fallback string
	Label    string
}

// Handler performs one action for the currently displayed record.
type Handler func(ctx context.Context, rec model.Record) (Outcome, error)

// Dispatcher is the explicit table of actions.
type Dispatcher struct {
	handlers  map[ID]Handler
	copier    *Copier
	open      Opener
	links     Links
	announcer announce.Announcer
	logger    *zap.Logger
}

// New returns a Dispatcher with the built-in actions registered.
func New(copier *Copier, open Opener, links Links, announcer announce.Announcer, logger *zap.Logger) *Dispatcher {
	if announcer == nil {
		announcer = announce.Nop
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		handlers:  map[ID]Handler{},
		copier:    copier,
		open:      open,
		links:     links,
		announcer: announcer,
		logger:    logger,
	}
	d.Register(CopyMeme, d.copyMeme)
	d.Register(CopyCaption, d.copyCaption)
	d.Register(CopyLink, d.copyLink)
	d.Register(CopyContract, d.copyContract)
	d.Register(Share, d.share)
	d.Register(Buy, d.buy)
	return d
}

// Register adds or replaces the handler for id.
func (d *Dispatcher) Register(id ID, h Handler) {
	d.handlers[id] = h
}

// IDs lists the registered actions in sorted order.
func (d *Dispatcher) IDs() []ID {
	ids := make([]ID, 0, len(d.handlers))
	for id := range d.handlers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Dispatch runs the action and announces its result.
func (d *Dispatcher) Dispatch(ctx context.Context, id ID, rec model.Record) (Outcome, error) {
	h, ok := d.handlers[id]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownAction, id)
	}
	out, err := h(ctx, rec)
	out.Action = id
	if err != nil {
		switch {
		case errors.Is(err, ErrNoMeme):
			d.announcer.Announce("Generate a meme first", announce.Polite)
			return out, err
		case errors.Is(err, ErrNoContract):
			d.announcer.Announce("Contract address not configured", announce.Polite)
			return out, err
		}
		d.logger.Warn("action failed", zap.String("action", string(id)), zap.Error(err))
		d.announcer.Announce(fmt.Sprintf("Could not %s", strings.ReplaceAll(string(id), "-", " ")), announce.Assertive)
		return out, err
	}
	if out.Message != "" {
		d.announcer.Announce(out.Message, out.Priority)
	}
	return out, nil
}

// MemeText is the shareable text of a quote.
func MemeText(phrase string) string {
	return phrase + signature
}

// Caption is the multi-line social caption for a record.
func Caption(rec model.Record, site string) string {
	source := rec.Source
	if source == "" {
		source = captionSource
	}
	return strings.Join([]string{
		strings.ToLower(rec.Phrase),
		"source: " + strings.ToLower(source),
		fmt.Sprintf("confidence: %d%%", rec.Confidence),
		"$" + TokenSymbol + " • " + TokenName,
		site,
		"satire not news",
	}, "\n")
}

func (d *Dispatcher) copyMeme(_ context.Context, rec model.Record) (Outcome, error) {
	if rec.Phrase == "" {
		return Outcome{}, ErrNoMeme
	}
	return d.copy(MemeText(rec.Phrase), "Meme copied to clipboard", "Meme"), nil
}

func (d *Dispatcher) copyCaption(_ context.Context, rec model.Record) (Outcome, error) {
	if rec.Phrase == "" {
		return Outcome{}, ErrNoMeme
	}
	return d.copy(Caption(rec, d.links.Site), "Caption copied to clipboard", "Caption"), nil
}

func (d *Dispatcher) copyLink(context.Context, model.Record) (Outcome, error) {
	return d.copy(d.links.Site, "Site link copied to clipboard", "Site link"), nil
}

func (d *Dispatcher) copyContract(context.Context, model.Record) (Outcome, error) {
	if d.links.Contract == "" {
		return Outcome{}, ErrNoContract
	}
	return d.copy(d.links.Contract, "Contract address copied to clipboard", "Contract address"), nil
}

func (d *Dispatcher) share(_ context.Context, rec model.Record) (Outcome, error) {
	if rec.Phrase == "" {
		return Outcome{}, ErrNoMeme
	}
	target, err := ShareURL(d.links.Share, MemeText(rec.Phrase))
	if err != nil {
		return Outcome{}, fmt.Errorf("build share url: %w", err)
	}
	if err := d.open(target); err != nil {
		return Outcome{URL: target}, fmt.Errorf("open share dialog: %w", err)
	}
	return Outcome{URL: target, Message: "Opening Twitter share dialog"}, nil
}

func (d *Dispatcher) buy(context.Context, model.Record) (Outcome, error) {
	if err := d.open(d.links.Token); err != nil {
		return Outcome{URL: d.links.Token}, fmt.Errorf("open token page: %w", err)
	}
	return Outcome{URL: d.links.Token, Message: "Opening Pump.fun in browser"}, nil
}

// copy never fails: when no mechanism works the text travels back in the
// outcome instead.
func (d *Dispatcher) copy(text, success, label string) Outcome {
	method, err := d.copier.Copy(text)
	if err != nil {
		d.logger.Warn("clipboard unavailable", zap.String("label", label), zap.Error(err))
		return Outcome{
			Message:  label + ": " + text,
			Priority: announce.Assertive,
			Fallback: text,
			Label:    label,
		}
	}
	return Outcome{Message: success, Method: method}
}
