// Package core contains the dispatch plumbing shared by every stage: the
// worker-pool Dispatcher that schedules independent deliveries, the
// subscriber Registry, and dispatcher options (YAML file or context). It does
// not define transforms; packages link and chain build on it.
package core
