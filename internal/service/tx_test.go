package service

import "context"

type testTxRepos struct {
	tickets         TicketRepositoryInterface
	knowledge       KnowledgeRepositoryInterface
	recommendations RecommendationRepositoryInterface
}

func (t *testTxRepos) Tickets() TicketRepositoryInterface {
	return t.tickets
}

func (t *testTxRepos) Knowledge() KnowledgeRepositoryInterface {
	return t.knowledge
}

func (t *testTxRepos) Recommendations() RecommendationRepositoryInterface {
	return t.recommendations
}

type testTxRunner struct {
	repos  TxRepositories
	called bool
}

func (t *testTxRunner) WithTx(ctx context.Context, fn func(repos TxRepositories) error) error {
	t.called = true
	return fn(t.repos)
}
