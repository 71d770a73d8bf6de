package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Send         key.Binding
	Headline     key.Binding
	Funny        key.Binding
	Political    key.Binding
	MoreConf     key.Binding
	LessConf     key.Binding
	NextSource   key.Binding
	CopyMeme     key.Binding
	CopyCaption  key.Binding
	CopyLink     key.Binding
	CopyContract key.Binding
	Share        key.Binding
	Buy          key.Binding
	Dismiss      key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Send:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "generate")),
		Headline:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "breaking news")),
		Funny:        key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "funny")),
		Political:    key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "political")),
		MoreConf:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "confidence +")),
		LessConf:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "confidence -")),
		NextSource:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "source")),
		CopyMeme:     key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy meme")),
		CopyCaption:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "copy caption")),
		CopyLink:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "copy link")),
		CopyContract: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "copy contract")),
		Share:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "share")),
		Buy:          key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "buy")),
		Dismiss:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Help:         key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "help")),
		Quit:         key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Headline, k.CopyMeme, k.Share, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.Headline, k.Funny, k.Political},
		{k.MoreConf, k.LessConf, k.NextSource},
		{k.CopyMeme, k.CopyCaption, k.CopyLink, k.CopyContract, k.Share, k.Buy},
		{k.Dismiss, k.Help, k.Quit},
	}
}
