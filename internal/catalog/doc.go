// Package catalog is the resource facade over the yoga catalog API.
//
// A Service groups three facades that share one api.Client and therefore
// one session store:
//
//   - Poses lists and fetches poses. Responses go through the pose
//     normalizer, and eligible failures are answered from the bundled
//     dataset by a fallback.Resolver. Results carry a Fallback flag so
//     callers can tell the user.
//   - Auth validates login and signup forms locally, stores the session the
//     server returns, checks an existing session and logs out.
//   - Bookmarks lists, adds, removes and toggles saved poses for the
//     logged-in user.
//
// Session lifecycle: a successful Login or Signup stores the token. Logout,
// any 401 response and a failed CheckAuth clear it. CheckAuth never sends a
// request when there is no token.
//
// Form problems are reported as *ValidationError before any request is
// made. API failures keep their *api.Error so callers can branch with
// errors.Is against the api sentinels.
package catalog
