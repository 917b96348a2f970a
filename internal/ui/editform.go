package ui

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/taxdesk/internal/edit"
	"github.com/gravitrone/taxdesk/internal/ui/components"
)

const (
	editFieldName = iota
	editFieldCountry
	editFieldCount
)

// startEdit opens the transaction for the selected row.
func (a App) startEdit() (App, tea.Cmd) {
	id, ok := a.rows.SelectedID()
	if !a.session.Ready() || !ok {
		return a, nil
	}
	rec, err := a.session.EditIntent(id)
	if err != nil {
		a.logger().Warn().Err(err).Str("record_id", id).Msg("edit intent rejected")
		return a, nil
	}
	if err := a.editor.Open(rec, a.session.Countries); err != nil {
		a.logger().Debug().Err(err).Str("record_id", id).Msg("edit already open")
		return a, nil
	}
	a.editFocus = editFieldName
	a.nameInput.SetValue(rec.Name)
	a.nameInput.CursorEnd()
	cmd := a.nameInput.Focus()
	return a, cmd
}

func (a App) handleEditKeys(msg tea.KeyMsg) (App, tea.Cmd) {
	if a.editor.Submitting() {
		return a, nil
	}
	switch {
	case isBack(msg):
		if err := a.editor.Cancel(); err != nil {
			return a, nil
		}
		a.nameInput.Blur()
		return a, nil
	case isSave(msg):
		return a.saveEdit()
	case key.Matches(msg, keys.Focus):
		return a.setEditFocus((a.editFocus + 1) % editFieldCount)
	}

	if a.editFocus == editFieldCountry {
		switch {
		case key.Matches(msg, keys.Prev), isUp(msg):
			_ = a.editor.CycleCountry(-1)
		case key.Matches(msg, keys.Next), isDown(msg):
			_ = a.editor.CycleCountry(1)
		case isEnter(msg):
			return a.saveEdit()
		}
		return a, nil
	}

	if isEnter(msg) {
		return a.setEditFocus(editFieldCountry)
	}
	var cmd tea.Cmd
	a.nameInput, cmd = a.nameInput.Update(msg)
	_ = a.editor.SetName(a.nameInput.Value())
	return a, cmd
}

func (a App) setEditFocus(field int) (App, tea.Cmd) {
	a.editFocus = field
	if field == editFieldName {
		cmd := a.nameInput.Focus()
		return a, cmd
	}
	a.nameInput.Blur()
	return a, nil
}

// saveEdit validates and, when valid, sends the single in-flight update.
func (a App) saveEdit() (App, tea.Cmd) {
	sub, err := a.editor.BeginSubmit()
	if err != nil {
		var ve *edit.ValidationError
		if errors.As(err, &ve) {
			a.logger().Debug().Str("field", ve.Field).Msg(ve.Message)
		}
		return a, nil
	}
	a.nameInput.Blur()
	return a, tea.Batch(a.spinner.Tick, a.saveRecord(sub))
}

func (a App) saveRecord(sub edit.Submission) tea.Cmd {
	return func() tea.Msg {
		updated, err := a.backend.UpdateRecord(a.ctx, sub.RecordID, sub.Input)
		return savedMsg{id: sub.RecordID, record: updated, err: err}
	}
}

func (a App) applySaved(msg savedMsg) (App, tea.Cmd) {
	rec, err := a.editor.Resolve(msg.record, msg.err)
	if errors.Is(err, edit.ErrNotEditable) {
		return a, nil
	}
	if err != nil {
		a.logger().Error().Err(err).Str("record_id", msg.id).Msg("save failed")
		var cmd tea.Cmd
		if a.editFocus == editFieldName {
			cmd = a.nameInput.Focus()
		}
		return a, cmd
	}
	var cmd tea.Cmd
	if a.session.Reconcile(a.ctx, rec) {
		cmd = a.setToast("success", fmt.Sprintf("Saved #%s", rec.ID))
	} else {
		cmd = a.setToast("warning", fmt.Sprintf("Saved #%s, but it is no longer listed", rec.ID))
	}
	return a, cmd
}

// hasUnsaved reports an open transaction whose fields differ from the record.
func (a App) hasUnsaved() bool {
	tx, ok := a.editor.Transaction()
	if !ok {
		return false
	}
	return tx.Name != tx.Snapshot.Name || tx.Country != tx.Snapshot.Country
}

func (a App) renderEdit() string {
	tx, ok := a.editor.Transaction()
	if !ok {
		return a.renderRecords()
	}

	countries := a.editor.Countries()
	country := MutedStyle.Render("Select a country")
	if tx.Country != "" {
		country = "◂ " + components.SanitizeOneLine(tx.Country) + " ▸"
		if idx := slices.Index(countries, tx.Country); idx >= 0 {
			country += MutedStyle.Render(fmt.Sprintf("  %d/%d", idx+1, len(countries)))
		}
	}

	fields := []components.FormField{
		{Label: "Name", Value: a.nameInput.View(), Focused: a.editFocus == editFieldName},
		{Label: "Country", Value: country, Focused: a.editFocus == editFieldCountry},
	}

	footer := "tab: field | ←/→: country | ctrl+s: save | esc: cancel"
	if a.editor.Submitting() {
		footer = a.spinner.View() + " Saving..."
	}

	header := components.InfoRow("Record", "#"+tx.Snapshot.ID) + "\n\n"
	form := components.FormDialog("Edit Record", fields, tx.Error, footer, a.width)
	return header + form
}
