// Package eip reconciles the desired state of an EC2 Elastic IP address with
// what AWS currently reports.
//
// A reconciliation is stateless: every call re-reads the addresses from the
// cloud API, decides whether an allocation, association, disassociation or
// release is needed, performs it (unless in dry-run mode) and reports what
// changed. Calls are strictly sequential and nothing is rolled back; running
// the same request again converges.
//
// Two concurrent reconciliations that both reuse "any unassociated address"
// may pick the same address before either associates it. No locking is done
// here; callers that need exclusivity must serialize their requests.
package eip
