package menu

func (m *Menu) handleInsert(cmd *Command) error {
	return m.dir.Insert(cmd.Name, cmd.Number)
}

func (m *Menu) handleUpdate(cmd *Command) error {
	return m.dir.Update(cmd.Entry, cmd.Name, cmd.Number)
}

func (m *Menu) handleDelete(cmd *Command) error {
	return m.dir.Delete(cmd.Entry)
}
