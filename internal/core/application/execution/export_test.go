package execution

// RetiredOrders returns the number of executed orders kept in memory.
func (s *Service) RetiredOrders() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.retired)
}
