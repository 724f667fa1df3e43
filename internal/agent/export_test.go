package agent

// DropFromRegistry removes the agent from the registry while leaving its id
// in the iteration order, so tests can make a later StopAgent fail mid
// StopAllAgents.
func (c *Controller) DropFromRegistry(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cancel, ok := c.cancels[id]; ok {
		cancel()
		delete(c.cancels, id)
	}
	delete(c.agents, id)
}

// RunnerCount returns the number of registered decision loop handles.
func (c *Controller) RunnerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cancels)
}
